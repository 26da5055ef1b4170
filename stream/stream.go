package stream

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"bilifm/models"
)

// Done reports an exhausted reader. It is the reader's only non-failure
// terminal condition.
var Done = errors.New("stream: no more songs")

// Page is one fetched batch of normalized songs. Cursor and HasMore are only
// meaningful for cursor-paginated kinds (the subscription feed); everywhere
// else they are ignored.
type Page struct {
	Songs   []models.Song
	Cursor  string
	HasMore bool
}

// FetchFunc retrieves one page. page numbers start at 1; cursor carries the
// previous page's continuation token in cursor mode and is empty otherwise.
type FetchFunc func(ctx context.Context, page int, cursor string) (*Page, error)

// ProbeFunc learns an authoritative total for a reader created with an
// unknown count. It runs at most once, on the first Next.
type ProbeFunc func(ctx context.Context) (int, error)

// Reader is a lazy, forward-only, single-pass song sequence over a paginated
// backend listing. It fetches one page at a time as the consumer pulls; a
// fetch error aborts the stream at that point, keeping already-yielded songs
// valid. Not safe for concurrent use; the owner of the provider session must
// serialize access.
type Reader struct {
	fetch      FetchFunc
	probe      ProbeFunc
	total      int
	pageSize   int
	cursorMode bool
	upperBound bool

	page     int
	cursor   string
	buf      []models.Song
	idx      int
	noMore   bool
	finished bool
	err      error
}

// New builds a count-bounded reader: pages 1..ceil(total/pageSize) are
// fetched in order.
func New(fetch FetchFunc, total, pageSize int) *Reader {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Reader{fetch: fetch, total: total, pageSize: pageSize, page: 1}
}

// NewCursor builds a cursor-terminated reader. approxTotal is only a sizing
// hint for the consumer: the walk ends when a page reports has_more false,
// whatever the count-based bound would allow.
func NewCursor(fetch FetchFunc, approxTotal, pageSize int) *Reader {
	r := New(fetch, approxTotal, pageSize)
	r.cursorMode = true
	r.upperBound = true
	return r
}

// NewApprox builds a count-bounded reader off a placeholder total. The
// backend never reports a real count for this listing, so the bound only
// keeps the page loop finite and Total is flagged as an upper bound.
func NewApprox(fetch FetchFunc, placeholderTotal, pageSize int) *Reader {
	r := New(fetch, placeholderTotal, pageSize)
	r.upperBound = true
	return r
}

// NewProbed builds a count-bounded reader whose total is unknown until a
// one-shot probe on first read.
func NewProbed(fetch FetchFunc, probe ProbeFunc, pageSize int) *Reader {
	r := New(fetch, models.CountUnknown, pageSize)
	r.probe = probe
	return r
}

// Total is the declared item count, available before any page is fetched.
// The actual number of yielded songs may be smaller.
func (r *Reader) Total() int {
	return r.total
}

// TotalIsUpperBound reports whether Total is a placeholder bound rather than
// a backend-reported count.
func (r *Reader) TotalIsUpperBound() bool {
	return r.upperBound
}

// Next yields the next song in page order. It returns Done once the
// sequence is exhausted, or the fetch error that aborted the stream.
func (r *Reader) Next(ctx context.Context) (*models.Song, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.probe != nil && r.total == models.CountUnknown {
		total, err := r.probe(ctx)
		if err != nil {
			r.err = err
			return nil, err
		}
		log.Tracef("stream: probed total %d", total)
		r.total = total
		r.probe = nil
	}

	for {
		if r.idx < len(r.buf) {
			song := r.buf[r.idx]
			r.idx++
			return &song, nil
		}
		if r.finished || r.noMore {
			r.finished = true
			return nil, Done
		}
		if !r.cursorMode && r.page > r.lastPage() {
			r.finished = true
			return nil, Done
		}

		page, err := r.fetch(ctx, r.page, r.cursor)
		if err != nil {
			r.err = err
			return nil, err
		}
		r.buf = page.Songs
		r.idx = 0
		r.page++
		if r.cursorMode {
			r.cursor = page.Cursor
			if !page.HasMore {
				r.noMore = true
			}
		} else if len(page.Songs) == 0 {
			// Backend under-reported; stop rather than spin on empty pages.
			r.noMore = true
		}
	}
}

// Collect drains up to limit songs (everything when limit <= 0).
func (r *Reader) Collect(ctx context.Context, limit int) ([]models.Song, error) {
	var songs []models.Song
	for limit <= 0 || len(songs) < limit {
		song, err := r.Next(ctx)
		if errors.Is(err, Done) {
			break
		}
		if err != nil {
			return songs, err
		}
		songs = append(songs, *song)
	}
	return songs, nil
}

func (r *Reader) lastPage() int {
	if r.total <= 0 {
		return 0
	}
	return (r.total + r.pageSize - 1) / r.pageSize
}
