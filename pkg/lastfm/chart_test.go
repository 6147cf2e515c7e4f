package lastfm

import (
	"context"
	"errors"
	"testing"
	"time"
)

const tagArtistChart = `<lfm status="ok">
<weeklyartistchart tag="disco" from="1000" to="2000">
	<artist rank="1"><name>A</name><mbid></mbid><weight>50</weight><url>https://www.last.fm/music/A</url></artist>
	<artist rank="2"><name>B</name><mbid></mbid><weight>10</weight><url>https://www.last.fm/music/B</url></artist>
</weeklyartistchart>
</lfm>`

func TestTagService_GetWeeklyArtistChart(t *testing.T) {
	f := newFakeSession(false).respond("tag.getWeeklyArtistChart", tagArtistChart)
	svc := NewTagService(f)

	chart, err := svc.GetWeeklyArtistChart(context.Background(), Tag{Name: "disco"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSpan := TimeSpan{From: time.Unix(1000, 0).UTC(), To: time.Unix(2000, 0).UTC()}
	if chart.Span != wantSpan {
		t.Errorf("span = %+v, want %+v", chart.Span, wantSpan)
	}
	want := []ChartItem[Artist]{
		{Item: Artist{Name: "A"}, Rank: 1, Weight: 50, Span: wantSpan},
		{Item: Artist{Name: "B"}, Rank: 2, Weight: 10, Span: wantSpan},
	}
	if len(chart.Items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(chart.Items))
	}
	for i := range want {
		if chart.Items[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, chart.Items[i], want[i])
		}
	}

	if _, ok := f.calls[0].params.Get("from"); ok {
		t.Error("a nil span must not send from")
	}
}

func TestWeeklyChart_SpanParams(t *testing.T) {
	f := newFakeSession(false).respond("user.getWeeklyTrackChart", `<lfm status="ok">
<weeklytrackchart user="rj" from="1000" to="2000">
	<track rank="1"><artist mbid="">A</artist><name>Song</name><playcount>7</playcount></track>
</weeklytrackchart>
</lfm>`)
	svc := NewUserService(f)
	span := &TimeSpan{From: time.Unix(1000, 0), To: time.Unix(2000, 0)}

	chart, err := svc.GetWeeklyTrackChart(context.Background(), User{Name: "rj"}, span)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := chart.Items[0]; got.Item != (Track{Artist: "A", Title: "Song"}) || got.Weight != 7 {
		t.Errorf("unexpected item %+v", got)
	}
	p := f.calls[0].params
	if v, _ := p.Get("from"); v != "1000" {
		t.Errorf("from = %q, want 1000", v)
	}
	if v, _ := p.Get("to"); v != "2000" {
		t.Errorf("to = %q, want 2000", v)
	}
	if v, _ := p.Get("user"); v != "rj" {
		t.Errorf("user = %q, want rj", v)
	}
}

func TestWeeklyChart_InvertedSpan(t *testing.T) {
	f := newFakeSession(false).respond("tag.getWeeklyArtistChart", `<lfm status="ok">
<weeklyartistchart tag="disco" from="2000" to="1000">
	<artist rank="1"><name>A</name><weight>50</weight></artist>
</weeklyartistchart>
</lfm>`)

	_, err := NewTagService(f).GetWeeklyArtistChart(context.Background(), Tag{Name: "disco"}, nil)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestWeeklyChart_Empty(t *testing.T) {
	f := newFakeSession(false).respond("user.getWeeklyAlbumChart", `<lfm status="ok">
<weeklyalbumchart user="rj" from="1000" to="2000"></weeklyalbumchart>
</lfm>`)

	chart, err := NewUserService(f).GetWeeklyAlbumChart(context.Background(), User{Name: "rj"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chart.Items) != 0 {
		t.Errorf("expected no items, got %d", len(chart.Items))
	}
	if chart.Span.From.Unix() != 1000 {
		t.Errorf("expected span to be read, got %+v", chart.Span)
	}
}

func TestGetWeeklyChartTimeSpans(t *testing.T) {
	f := newFakeSession(false).respond("tag.getWeeklyChartList", `<lfm status="ok">
<weeklychartlist tag="disco">
	<chart from="1000" to="2000"/>
	<chart from="2000" to="3000"/>
</weeklychartlist>
</lfm>`)

	spans, err := NewTagService(f).GetWeeklyChartTimeSpans(context.Background(), Tag{Name: "disco"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[1].From.Unix() != 2000 || spans[1].To.Unix() != 3000 {
		t.Errorf("unexpected span %+v", spans[1])
	}
}
