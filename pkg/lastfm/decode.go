package lastfm

// Decoders turning one response element into an entity. They read direct
// children only, so an album's <name> is never confused with the <name>
// of its nested <artist>.

func decodeTag(n Node) (Tag, error) {
	name, err := n.ChildText("name", 0)
	if err != nil {
		return Tag{}, err
	}
	return Tag{Name: name}, nil
}

func decodeArtist(n Node) (Artist, error) {
	name, err := n.ChildText("name", 0)
	if err != nil {
		return Artist{}, err
	}
	return Artist{Name: name}, nil
}

func decodeUser(n Node) (User, error) {
	name, err := n.ChildText("name", 0)
	if err != nil {
		return User{}, err
	}
	return User{Name: name}, nil
}

// artistName reads the artist of an album or track element. Depending on
// the method the service renders it either as <artist>Name</artist> or as
// <artist><name>Name</name>...</artist>.
func artistName(n Node) (string, error) {
	a, err := n.Child("artist")
	if err != nil {
		return "", err
	}
	if name, err := a.ChildText("name", 0); err == nil {
		return name, nil
	}
	return a.Text(), nil
}

func decodeAlbum(n Node) (Album, error) {
	title, err := n.ChildText("name", 0)
	if err != nil {
		// album.getInfo nested in track.getInfo uses <title>.
		if title, err = n.ChildText("title", 0); err != nil {
			return Album{}, err
		}
	}
	artist, err := artistName(n)
	if err != nil {
		return Album{}, err
	}
	return Album{Artist: artist, Title: title}, nil
}

func decodeTrack(n Node) (Track, error) {
	title, err := n.ChildText("name", 0)
	if err != nil {
		return Track{}, err
	}
	artist, err := artistName(n)
	if err != nil {
		return Track{}, err
	}
	return Track{Artist: artist, Title: title}, nil
}

// decodeEach applies decode to every element named name under root.
func decodeEach[T any](root Node, name string, decode func(Node) (T, error)) ([]T, error) {
	nodes := root.NodesNamed(name)
	out := make([]T, 0, len(nodes))
	for _, n := range nodes {
		v, err := decode(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeWeighted is decodeEach for elements that carry a count field.
func decodeWeighted[T any](root Node, name, weightField string, decode func(Node) (T, error)) ([]Weighted[T], error) {
	return decodeEach(root, name, func(n Node) (Weighted[T], error) {
		v, err := decode(n)
		if err != nil {
			return Weighted[T]{}, err
		}
		w, err := n.ChildInt(weightField)
		if err != nil {
			return Weighted[T]{}, err
		}
		return Weighted[T]{Item: v, Weight: w}, nil
	})
}

// countMap folds weighted results into an entity to count mapping.
func countMap[T comparable](items []Weighted[T]) map[T]int {
	m := make(map[T]int, len(items))
	for _, it := range items {
		m[it.Item] = it.Weight
	}
	return m
}

// namesOf reads one <name> per element list, e.g. the tags of a
// <tags> block or the artists of a <similarartists> block.
func namesOf(root Node) ([]string, error) {
	return root.ExtractAll("name", 0)
}

func tagsFromNames(names []string) []Tag {
	return Tags(names...)
}

func artistsFromNames(names []string) []Artist {
	out := make([]Artist, len(names))
	for i, n := range names {
		out[i] = Artist{Name: n}
	}
	return out
}

func limitParams(e Entity, limit int) Params {
	p := baseParams(e)
	if limit > 0 {
		p.SetInt("limit", limit)
	}
	return p
}

func truncate[T any](items []T, limit int) []T {
	if limit >= 0 && limit < len(items) {
		return items[:limit]
	}
	return items
}
