package lastfm

import "time"

// TimeSpan is the period covered by a weekly chart.
type TimeSpan struct {
	From time.Time
	To   time.Time
}

// Params returns the from/to parameters selecting this span.
func (s TimeSpan) Params() Params {
	return Params{"from": FormatTimestamp(s.From), "to": FormatTimestamp(s.To)}
}

// ChartItem is one ranked entry of a weekly chart.
type ChartItem[T any] struct {
	Item   T
	Rank   int
	Weight int
	Span   TimeSpan
}

// WeeklyChart is a ranked list of items over one span. Every item carries
// the chart's span.
type WeeklyChart[T any] struct {
	Span  TimeSpan
	Items []ChartItem[T]
}

type (
	WeeklyArtistChart = WeeklyChart[Artist]
	WeeklyAlbumChart  = WeeklyChart[Album]
	WeeklyTrackChart  = WeeklyChart[Track]
)

// parseSpan reads the from/to attributes of n. Spans whose start is after
// their end are rejected as malformed.
func parseSpan(n Node) (TimeSpan, error) {
	rawFrom, err := n.Attr("from")
	if err != nil {
		return TimeSpan{}, err
	}
	rawTo, err := n.Attr("to")
	if err != nil {
		return TimeSpan{}, err
	}
	from, err := ParseTimestamp(rawFrom)
	if err != nil {
		return TimeSpan{}, err
	}
	to, err := ParseTimestamp(rawTo)
	if err != nil {
		return TimeSpan{}, err
	}
	if from.After(to) {
		return TimeSpan{}, malformed("chart span from %s is after to %s", rawFrom, rawTo)
	}
	return TimeSpan{From: from, To: to}, nil
}

// parseChartList reads a weekly chart list: one <chart from to> per span.
func parseChartList(root Node) ([]TimeSpan, error) {
	charts := root.NodesNamed("chart")
	spans := make([]TimeSpan, 0, len(charts))
	for _, c := range charts {
		span, err := parseSpan(c)
		if err != nil {
			return nil, err
		}
		spans = append(spans, span)
	}
	return spans, nil
}

// chartShape names the elements of one kind of weekly chart response.
type chartShape struct {
	root        string // e.g. "weeklyartistchart"
	item        string // e.g. "artist"
	weightField string // "playcount" or "weight"
}

// assembleChart parses the span of the chart root first and then one item
// per ranked child, all sharing that span.
func assembleChart[T any](doc Node, shape chartShape, decode func(Node) (T, error)) (WeeklyChart[T], error) {
	root, err := doc.Find(shape.root)
	if err != nil {
		return WeeklyChart[T]{}, err
	}
	span, err := parseSpan(root)
	if err != nil {
		return WeeklyChart[T]{}, err
	}

	chart := WeeklyChart[T]{Span: span}
	for _, n := range root.Children(shape.item) {
		rank, err := n.AttrInt("rank")
		if err != nil {
			return WeeklyChart[T]{}, err
		}
		weight, err := n.ChildInt(shape.weightField)
		if err != nil {
			return WeeklyChart[T]{}, err
		}
		item, err := decode(n)
		if err != nil {
			return WeeklyChart[T]{}, err
		}
		chart.Items = append(chart.Items, ChartItem[T]{Item: item, Rank: rank, Weight: weight, Span: span})
	}
	return chart, nil
}

// chartParams adds the optional span to e's parameters.
func chartParams(e Entity, span *TimeSpan) Params {
	p := baseParams(e)
	if span != nil {
		p.Merge(span.Params())
	}
	return p
}
