package stream

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bilifm/models"
)

func makeSongs(page, n int) []models.Song {
	songs := make([]models.Song, n)
	for i := range songs {
		songs[i] = models.Song{ID: fmt.Sprintf("p%d-%d", page, i)}
	}
	return songs
}

func TestReaderPageBounds(t *testing.T) {
	// 45 items, page size 20: pages 1, 2, 3 with 20+20+5 items.
	var fetched []int
	fetch := func(_ context.Context, page int, _ string) (*Page, error) {
		fetched = append(fetched, page)
		switch page {
		case 1, 2:
			return &Page{Songs: makeSongs(page, 20)}, nil
		case 3:
			return &Page{Songs: makeSongs(page, 5)}, nil
		default:
			return nil, fmt.Errorf("unexpected page %d", page)
		}
	}

	r := New(fetch, 45, 20)
	if r.Total() != 45 {
		t.Fatalf("Total() = %d, want 45", r.Total())
	}

	songs, err := r.Collect(context.Background(), 0)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(songs) != 45 {
		t.Errorf("yielded %d songs, want 45", len(songs))
	}
	if len(fetched) != 3 || fetched[0] != 1 || fetched[1] != 2 || fetched[2] != 3 {
		t.Errorf("fetched pages %v, want [1 2 3]", fetched)
	}
	if songs[0].ID != "p1-0" || songs[20].ID != "p2-0" || songs[44].ID != "p3-4" {
		t.Errorf("songs out of page order: first=%s mid=%s last=%s",
			songs[0].ID, songs[20].ID, songs[44].ID)
	}

	if _, err := r.Next(context.Background()); !errors.Is(err, Done) {
		t.Errorf("Next() after exhaustion = %v, want Done", err)
	}
}

func TestReaderLazy(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context, page int, _ string) (*Page, error) {
		calls++
		return &Page{Songs: makeSongs(page, 20)}, nil
	}

	r := New(fetch, 60, 20)
	if calls != 0 {
		t.Fatal("constructing a reader must not fetch")
	}
	for i := 0; i < 20; i++ {
		if _, err := r.Next(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Errorf("fetch calls = %d after one page of pulls, want 1", calls)
	}
}

func TestReaderCursorTermination(t *testing.T) {
	// Page 2 reports has_more=false with 3 items: the reader must stop
	// there even though the count bound would allow a third page.
	var cursors []string
	fetch := func(_ context.Context, page int, cursor string) (*Page, error) {
		cursors = append(cursors, cursor)
		switch page {
		case 1:
			return &Page{Songs: makeSongs(1, 20), Cursor: "c1", HasMore: true}, nil
		case 2:
			return &Page{Songs: makeSongs(2, 3), Cursor: "c2", HasMore: false}, nil
		default:
			return nil, fmt.Errorf("page %d must not be fetched", page)
		}
	}

	r := NewCursor(fetch, 1000, 20)
	if !r.TotalIsUpperBound() {
		t.Error("cursor reader total must be flagged approximate")
	}

	songs, err := r.Collect(context.Background(), 0)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(songs) != 23 {
		t.Errorf("yielded %d songs, want 23", len(songs))
	}
	if len(cursors) != 2 || cursors[0] != "" || cursors[1] != "c1" {
		t.Errorf("cursors threaded %v, want [\"\" c1]", cursors)
	}
}

func TestReaderFetchErrorAborts(t *testing.T) {
	boom := errors.New("upstream failed")
	fetch := func(_ context.Context, page int, _ string) (*Page, error) {
		if page == 2 {
			return nil, boom
		}
		return &Page{Songs: makeSongs(page, 20)}, nil
	}

	r := New(fetch, 60, 20)
	songs, err := r.Collect(context.Background(), 0)
	if !errors.Is(err, boom) {
		t.Fatalf("Collect() error = %v, want the fetch error", err)
	}
	// Items yielded before the failure stay valid.
	if len(songs) != 20 {
		t.Errorf("yielded %d songs before abort, want 20", len(songs))
	}
	// Subsequent pulls keep reporting the same failure.
	if _, err := r.Next(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Next() after abort = %v, want the fetch error", err)
	}
}

func TestReaderProbedTotal(t *testing.T) {
	probes := 0
	probe := func(context.Context) (int, error) {
		probes++
		return 25, nil
	}
	fetch := func(_ context.Context, page int, _ string) (*Page, error) {
		if page == 1 {
			return &Page{Songs: makeSongs(1, 20)}, nil
		}
		return &Page{Songs: makeSongs(2, 5)}, nil
	}

	r := NewProbed(fetch, probe, 20)
	if r.Total() != models.CountUnknown {
		t.Fatalf("Total() before first read = %d, want CountUnknown", r.Total())
	}

	songs, err := r.Collect(context.Background(), 0)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if probes != 1 {
		t.Errorf("probe ran %d times, want exactly once", probes)
	}
	if r.Total() != 25 {
		t.Errorf("Total() after probe = %d, want 25", r.Total())
	}
	if len(songs) != 25 {
		t.Errorf("yielded %d songs, want 25", len(songs))
	}
}

func TestReaderUnderReportedPage(t *testing.T) {
	// Backend claims 45 items but page 2 comes back empty; the reader
	// stops rather than spinning, and the mismatch stands.
	fetch := func(_ context.Context, page int, _ string) (*Page, error) {
		if page == 1 {
			return &Page{Songs: makeSongs(1, 20)}, nil
		}
		return &Page{}, nil
	}
	r := New(fetch, 45, 20)
	songs, err := r.Collect(context.Background(), 0)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(songs) != 20 {
		t.Errorf("yielded %d songs, want 20", len(songs))
	}
	if r.Total() != 45 {
		t.Errorf("declared total changed to %d", r.Total())
	}
}

func TestCollectLimit(t *testing.T) {
	fetch := func(_ context.Context, page int, _ string) (*Page, error) {
		return &Page{Songs: makeSongs(page, 20)}, nil
	}
	r := New(fetch, 100, 20)
	songs, err := r.Collect(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(songs) != 7 {
		t.Errorf("Collect(7) yielded %d songs", len(songs))
	}
}
