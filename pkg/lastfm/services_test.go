package lastfm

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

const cherInfo = `<lfm status="ok">
<artist>
	<name>Cher</name>
	<mbid>bfcc6d75-a6a5-4bc6-8282-47aec8531818</mbid>
	<url>https://www.last.fm/music/Cher</url>
	<image size="small">s.jpg</image>
	<image size="medium">m.jpg</image>
	<image size="large">l.jpg</image>
	<image size="extralarge">xl.jpg</image>
	<image size="mega">mega.jpg</image>
	<stats><listeners>1200000</listeners><playcount>35000000</playcount></stats>
	<similar>
		<artist><name>Madonna</name><image size="small">other.jpg</image></artist>
	</similar>
	<bio>
		<published>Thu, 1 Jan 2009 00:00:00 +0000</published>
		<summary>Cher is a singer.</summary>
		<content>Cher is a singer and actress.</content>
	</bio>
</artist>
</lfm>`

func TestArtistService_GetInfo(t *testing.T) {
	f := newFakeSession(false).respond("artist.getInfo", cherInfo)
	svc := NewArtistService(f)
	ctx := context.Background()
	cher := Artist{Name: "Cher"}

	info, err := svc.GetInfo(ctx, cher)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Artist != cher || info.Listeners != 1200000 || info.Playcount != 35000000 {
		t.Errorf("unexpected info %+v", info)
	}
	if len(info.Images) != 5 {
		t.Errorf("expected 5 images, got %v", info.Images)
	}
	if info.Bio.Summary != "Cher is a singer." {
		t.Errorf("unexpected bio %+v", info.Bio)
	}

	url, err := svc.GetImageURL(ctx, cher, ImageLarge)
	if err != nil || url != "l.jpg" {
		t.Errorf("GetImageURL(large) = %q (%v), want l.jpg", url, err)
	}
	listeners, err := svc.GetListenerCount(ctx, cher)
	if err != nil || listeners != 1200000 {
		t.Errorf("GetListenerCount = %d (%v)", listeners, err)
	}
	plays, err := svc.GetPlaycount(ctx, cher)
	if err != nil || plays != 35000000 {
		t.Errorf("GetPlaycount = %d (%v)", plays, err)
	}
}

func TestImageSize(t *testing.T) {
	for _, name := range []string{"small", "medium", "large", "extralarge", "mega"} {
		size, err := ParseImageSize(name)
		if err != nil {
			t.Fatalf("ParseImageSize(%q): %v", name, err)
		}
		if size.String() != name {
			t.Errorf("round trip %q -> %q", name, size.String())
		}
	}
	if _, err := ParseImageSize("huge"); err == nil {
		t.Error("expected an error for an unknown size")
	}
}

func TestArtistService_GetSimilar(t *testing.T) {
	f := newFakeSession(false).respond("artist.getSimilar", similarDoc)

	got, err := NewArtistService(f).GetSimilar(context.Background(), Artist{Name: "Cher"}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Artist{{Name: "Sonny & Cher"}, {Name: "Madonna"}, {Name: "Kylie Minogue"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetSimilar = %v, want %v", got, want)
	}
	if v, _ := f.calls[0].params.Get("limit"); v != "3" {
		t.Errorf("limit = %q, want 3", v)
	}
}

func TestArtistService_GetTopTags(t *testing.T) {
	f := newFakeSession(false).respond("artist.getTopTags", `<lfm status="ok"><toptags artist="Cher">
	<tag><count>100</count><name>pop</name></tag>
	<tag><count>60</count><name>female vocalists</name></tag>
	<tag><count>20</count><name>dance</name></tag>
</toptags></lfm>`)

	got, err := NewArtistService(f).GetTopTags(context.Background(), Artist{Name: "Cher"}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TopTag{{Item: Tag{Name: "pop"}, Weight: 100}, {Item: Tag{Name: "female vocalists"}, Weight: 60}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetTopTags = %v, want %v", got, want)
	}
}

func TestArtistService_GetEvents(t *testing.T) {
	f := newFakeSession(false).respond("artist.getEvents", `<lfm status="ok"><events artist="Cher">
	<event><id>640</id><title>Farewell</title><venue><id>8777</id><name>Arena</name></venue></event>
	<event><id>641</id><title>Encore</title><venue><id>8778</id><name>Dome</name></venue></event>
</events></lfm>`)

	got, err := NewArtistService(f).GetEvents(context.Background(), Artist{Name: "Cher"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []Event{{ID: 640}, {ID: 641}}; !reflect.DeepEqual(got, want) {
		t.Errorf("GetEvents = %v, want %v", got, want)
	}
}

func TestShare(t *testing.T) {
	ctx := context.Background()

	t.Run("one call per recipient", func(t *testing.T) {
		f := newFakeSession(true)
		err := NewArtistService(f).Share(ctx, Artist{Name: "Cher"}, []string{"rj", "bob@example.com"}, "listen")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.calls) != 2 {
			t.Fatalf("expected 2 calls, got %d", len(f.calls))
		}
		if v, _ := f.calls[1].params.Get("recipient"); v != "bob@example.com" {
			t.Errorf("recipient = %q", v)
		}
		if v, _ := f.calls[0].params.Get("message"); v != "listen" {
			t.Errorf("message = %q", v)
		}
	})

	t.Run("requires authentication", func(t *testing.T) {
		f := newFakeSession(false)
		err := NewEventService(f).Share(ctx, Event{ID: 1}, []string{"rj"}, "")
		if !errors.Is(err, ErrAuthenticationRequired) {
			t.Errorf("expected ErrAuthenticationRequired, got %v", err)
		}
		if len(f.calls) != 0 {
			t.Errorf("expected no calls, got %d", len(f.calls))
		}
	})

	t.Run("no recipients", func(t *testing.T) {
		f := newFakeSession(true)
		err := NewTrackService(f).Share(ctx, Track{Artist: "A", Title: "T"}, nil, "")
		if !errors.Is(err, ErrNoRecipients) {
			t.Errorf("expected ErrNoRecipients, got %v", err)
		}
	})
}

func TestAlbumService_GetInfo(t *testing.T) {
	f := newFakeSession(false).respond("album.getInfo", `<lfm status="ok"><album>
	<name>Believe</name>
	<artist>Cher</artist>
	<id>2026126</id>
	<mbid>61bf0388-b8a9-48f4-81d1-7eb02706dfb0</mbid>
	<url>https://www.last.fm/music/Cher/Believe</url>
	<releasedate>6 Apr 1999, 00:00</releasedate>
	<image size="small">s.jpg</image>
	<image size="medium">m.jpg</image>
	<image size="large">l.jpg</image>
	<listeners>47602</listeners>
	<playcount>212991</playcount>
	<toptags><tag><name>pop</name></tag><tag><name>dance</name></tag></toptags>
</album></lfm>`)
	svc := NewAlbumService(f)
	believe := Album{Artist: "Cher", Title: "Believe"}

	info, err := svc.GetInfo(context.Background(), believe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Album != believe || info.ID != 2026126 || info.Playcount != 212991 {
		t.Errorf("unexpected info %+v", info)
	}
	if !reflect.DeepEqual(info.TopTags, Tags("pop", "dance")) {
		t.Errorf("TopTags = %v", info.TopTags)
	}

	if _, err := svc.GetImageURL(context.Background(), believe, ImageMega); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for a missing size, got %v", err)
	}
	p := f.calls[0].params
	if v, _ := p.Get("album"); v != "Believe" {
		t.Errorf("album = %q", v)
	}
}

func TestTrackService_GetInfo(t *testing.T) {
	f := newFakeSession(false).respond("track.getInfo", `<lfm status="ok"><track>
	<id>1019817</id>
	<name>Believe</name>
	<url>https://www.last.fm/music/Cher/_/Believe</url>
	<duration>240000</duration>
	<listeners>69572</listeners>
	<playcount>281445</playcount>
	<artist><name>Cher</name><url>https://www.last.fm/music/Cher</url></artist>
	<album position="1"><artist>Cher</artist><title>Believe</title></album>
	<toptags><tag><name>pop</name></tag></toptags>
</track></lfm>`)

	info, err := NewTrackService(f).GetInfo(context.Background(), Track{Artist: "Cher", Title: "Believe"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Track != (Track{Artist: "Cher", Title: "Believe"}) {
		t.Errorf("Track = %+v", info.Track)
	}
	if info.Duration != 4*time.Minute {
		t.Errorf("Duration = %v, want 4m", info.Duration)
	}
	if info.Album == nil || *info.Album != (Album{Artist: "Cher", Title: "Believe"}) {
		t.Errorf("Album = %+v", info.Album)
	}
}

func TestTrackService_WritesRequireAuthentication(t *testing.T) {
	ctx := context.Background()
	f := newFakeSession(false)
	svc := NewTrackService(f)
	tr := Track{Artist: "A", Title: "T"}

	for name, fn := range map[string]func() error{
		"Love":   func() error { return svc.Love(ctx, tr) },
		"Unlove": func() error { return svc.Unlove(ctx, tr) },
		"Ban":    func() error { return svc.Ban(ctx, tr) },
	} {
		if err := fn(); !errors.Is(err, ErrAuthenticationRequired) {
			t.Errorf("%s: expected ErrAuthenticationRequired, got %v", name, err)
		}
	}
	if len(f.calls) != 0 {
		t.Errorf("expected no calls, got %v", f.methods())
	}

	f.authed = true
	if err := svc.Love(ctx, tr); err != nil {
		t.Fatalf("Love: unexpected error: %v", err)
	}
	if got := f.methods(); !reflect.DeepEqual(got, []string{"track.love"}) {
		t.Errorf("methods = %v", got)
	}
}

func TestTagService_TopWithCount(t *testing.T) {
	f := newFakeSession(false).respond("tag.getTopAlbums", `<lfm status="ok"><topalbums tag="disco">
	<album rank="1"><name>Discovery</name><tagcount>105</tagcount><artist><name>Daft Punk</name></artist></album>
	<album rank="2"><name>Confessions</name><tagcount>80</tagcount><artist><name>Madonna</name></artist></album>
</topalbums></lfm>`)
	svc := NewTagService(f)

	counts, err := svc.GetTopAlbumsWithCount(context.Background(), Tag{Name: "disco"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[Album]int{
		{Artist: "Daft Punk", Title: "Discovery"}: 105,
		{Artist: "Madonna", Title: "Confessions"}: 80,
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("counts = %v, want %v", counts, want)
	}

	albums, err := svc.GetTopAlbums(context.Background(), Tag{Name: "disco"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(albums) != 2 || albums[0].Title != "Discovery" {
		t.Errorf("albums = %v", albums)
	}
}

func TestUserService_GetRecentTracks(t *testing.T) {
	f := newFakeSession(false).respond("user.getRecentTracks", `<lfm status="ok"><recenttracks user="rj">
	<track nowplaying="true"><artist mbid="">Cher</artist><name>Believe</name><album mbid="">Believe</album></track>
	<track><artist mbid="">Madonna</artist><name>Vogue</name><album mbid="">I'm Breathless</album><date uts="1700000000">14 Nov 2023, 22:13</date></track>
</recenttracks></lfm>`)

	tracks, err := NewUserService(f).GetRecentTracks(context.Background(), User{Name: "rj"}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if !tracks[0].NowPlaying || !tracks[0].At.IsZero() {
		t.Errorf("first track should be now playing, got %+v", tracks[0])
	}
	if tracks[1].Track != (Track{Artist: "Madonna", Title: "Vogue"}) || tracks[1].At.Unix() != 1700000000 {
		t.Errorf("unexpected second track %+v", tracks[1])
	}
}

func TestUserService_GetTopArtists_Period(t *testing.T) {
	f := newFakeSession(false).respond("user.getTopArtists", `<lfm status="ok"><topartists user="rj">
	<artist rank="1"><name>Cher</name><playcount>42</playcount></artist>
</topartists></lfm>`)

	got, err := NewUserService(f).GetTopArtists(context.Background(), User{Name: "rj"}, Period7Day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []TopArtist{{Item: Artist{Name: "Cher"}, Weight: 42}}; !reflect.DeepEqual(got, want) {
		t.Errorf("GetTopArtists = %v, want %v", got, want)
	}
	if v, _ := f.calls[0].params.Get("period"); v != "7day" {
		t.Errorf("period = %q, want 7day", v)
	}
	if _, err := ParsePeriod("fortnight"); err == nil {
		t.Error("expected an error for an unknown period")
	}
}

func TestEventService(t *testing.T) {
	ctx := context.Background()
	f := newFakeSession(true).respond("event.getInfo", `<lfm status="ok"><event>
	<id>640</id>
	<title>Farewell</title>
	<artists><artist>Cher</artist><artist>Cyndi Lauper</artist><headliner>Cher</headliner></artists>
	<venue><id>8777</id><name>Arena</name></venue>
	<startDate>Fri, 15 Nov 2024</startDate>
</event></lfm>`)
	svc := NewEventService(f)

	info, err := svc.GetInfo(ctx, Event{ID: 640})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Event.ID != 640 || info.Headliner.Name != "Cher" || len(info.Artists) != 2 || info.Venue != "Arena" {
		t.Errorf("unexpected info %+v", info)
	}

	if err := svc.Attend(ctx, Event{ID: 640}, MaybeAttending); err != nil {
		t.Fatalf("Attend: unexpected error: %v", err)
	}
	last := f.calls[len(f.calls)-1]
	if v, _ := last.params.Get("status"); last.method != "event.attend" || v != "1" {
		t.Errorf("unexpected attend call %+v", last)
	}
	if v, _ := last.params.Get("event"); v != "640" {
		t.Errorf("event = %q, want 640", v)
	}
}
