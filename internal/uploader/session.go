package uploader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrTooManyFiles  = errors.New("too many files selected")
	ErrSessionClosed = errors.New("upload session is closed")
)

// File is one user-selected file handed to the session.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Session coordinates the upload lifecycle for one product-creation flow. It
// is the single writer of its entry list: the transport reports progress and
// outcomes, the session applies them — always by entry identity, never by
// position, so completions may land in any order.
type Session struct {
	mu        sync.Mutex
	broker    Broker
	transport Transport
	previews  *PreviewStore
	maxFiles  int
	entries   []*Entry
	onChange  func([]Entry)
	wg        sync.WaitGroup
	closed    bool
}

func NewSession(broker Broker, transport Transport, maxFiles int) (*Session, error) {
	previews, err := NewPreviewStore()
	if err != nil {
		return nil, err
	}
	return &Session{
		broker:    broker,
		transport: transport,
		previews:  previews,
		maxFiles:  maxFiles,
	}, nil
}

// OnChange registers the snapshot observer. It is invoked with a consistent
// copy of the entry list after every state change.
func (s *Session) OnChange(fn func([]Entry)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Entries returns a point-in-time copy of the entry list.
func (s *Session) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Add admits a batch of files. The capacity check covers the whole incoming
// batch before anything is admitted: over capacity means no mutation at all.
// Non-image files are dropped from the batch; the returned skipped count lets
// the caller surface a non-fatal warning. Accepted files become uploading
// entries synchronously; signing and uploading proceed in the background.
func (s *Session) Add(ctx context.Context, files []File) (skipped int, err error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, ErrSessionClosed
	}
	if len(s.entries)+len(files) > s.maxFiles {
		s.mu.Unlock()
		return 0, fmt.Errorf("%w: %d selected, %d slots left", ErrTooManyFiles, len(files), s.maxFiles-len(s.entries))
	}

	accepted := make([]File, 0, len(files))
	for _, f := range files {
		if strings.HasPrefix(f.ContentType, "image/") {
			accepted = append(accepted, f)
		} else {
			skipped++
		}
	}
	if len(accepted) == 0 {
		s.mu.Unlock()
		return skipped, nil
	}

	batch := make([]*Entry, 0, len(accepted))
	for _, f := range accepted {
		entry := &Entry{
			ID:       uuid.New().String(),
			FileName: f.Name,
			Status:   StatusUploading,
			Progress: 0,
		}
		if preview, perr := s.previews.Create(f.Name, f.Data); perr == nil {
			entry.preview = preview
			entry.PreviewURL = preview.URL
		} else {
			log.Printf("preview for %s skipped: %v", f.Name, perr)
		}
		s.entries = append(s.entries, entry)
		batch = append(batch, entry)
	}

	notify := s.changedLocked()
	s.wg.Add(1)
	s.mu.Unlock()
	notify()

	go s.runBatch(ctx, accepted, batch)

	return skipped, nil
}

// Remove drops an entry regardless of status and releases its preview. An
// upload still in flight is not cancelled, but its eventual completion will
// find no entry and apply nothing.
func (s *Session) Remove(id string) {
	s.mu.Lock()
	for i, e := range s.entries {
		if e.ID == id {
			if e.preview != nil {
				e.preview.Release()
			}
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	notify := s.changedLocked()
	s.mu.Unlock()
	notify()
}

// Clear removes every entry and releases all previews.
func (s *Session) Clear() {
	s.mu.Lock()
	for _, e := range s.entries {
		if e.preview != nil {
			e.preview.Release()
		}
	}
	s.entries = nil
	notify := s.changedLocked()
	s.mu.Unlock()
	notify()
}

// Wait blocks until every admitted upload has reached a terminal state.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close tears the session down, releasing every preview. In-flight uploads
// finish into the void.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for _, e := range s.entries {
		if e.preview != nil {
			e.preview.Release()
		}
	}
	s.entries = nil
	s.mu.Unlock()
	return s.previews.Close()
}

// runBatch signs the batch in one broker call and fans out one upload per
// file. Broker-level failures take the whole batch to error; transport
// failures stay local to their entry.
func (s *Session) runBatch(ctx context.Context, files []File, batch []*Entry) {
	defer s.wg.Done()

	metas := make([]FileMeta, len(files))
	for i, f := range files {
		metas[i] = FileMeta{Name: f.Name, Type: f.ContentType}
	}

	results, err := s.broker.SignBatch(ctx, metas)
	if err != nil {
		s.failBatch(batch, "failed to obtain upload URL")
		return
	}
	if len(results) != len(files) {
		s.failBatch(batch, "upload URL count mismatch")
		return
	}

	for i := range files {
		s.wg.Add(1)
		go func(f File, r SignedUpload, entryID string) {
			defer s.wg.Done()

			err := s.transport.Upload(ctx, r.UploadURL, bytes.NewReader(f.Data), int64(len(f.Data)), f.ContentType,
				func(percent int) { s.applyProgress(entryID, percent) })
			if err != nil {
				s.fail(entryID, err.Error())
				return
			}
			s.complete(entryID, r.Key, r.PublicURL)
		}(files[i], results[i], batch[i].ID)
	}
}

// applyProgress updates a single entry's progress. No-op when the entry was
// removed or already terminal; regressions are clamped so progress never
// decreases.
func (s *Session) applyProgress(id string, percent int) {
	s.mu.Lock()
	e := s.findLocked(id)
	if e == nil || e.Status != StatusUploading {
		s.mu.Unlock()
		return
	}
	if percent > 100 {
		percent = 100
	}
	if percent <= e.Progress {
		s.mu.Unlock()
		return
	}
	e.Progress = percent
	notify := s.changedLocked()
	s.mu.Unlock()
	notify()
}

func (s *Session) complete(id, key, publicURL string) {
	s.mu.Lock()
	e := s.findLocked(id)
	if e == nil || e.Status != StatusUploading {
		s.mu.Unlock()
		return
	}
	e.Status = StatusDone
	e.Progress = 100
	e.Key = key
	e.PublicURL = publicURL
	notify := s.changedLocked()
	s.mu.Unlock()
	notify()
}

func (s *Session) fail(id, message string) {
	s.mu.Lock()
	e := s.findLocked(id)
	if e == nil || e.Status != StatusUploading {
		s.mu.Unlock()
		return
	}
	e.Status = StatusError
	e.ErrorMessage = message
	notify := s.changedLocked()
	s.mu.Unlock()
	notify()
}

func (s *Session) failBatch(batch []*Entry, message string) {
	s.mu.Lock()
	for _, b := range batch {
		if e := s.findLocked(b.ID); e != nil && e.Status == StatusUploading {
			e.Status = StatusError
			e.ErrorMessage = message
		}
	}
	notify := s.changedLocked()
	s.mu.Unlock()
	notify()
}

func (s *Session) findLocked(id string) *Entry {
	for _, e := range s.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (s *Session) snapshotLocked() []Entry {
	snap := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		snap[i] = *e
		snap[i].preview = nil
	}
	return snap
}

// changedLocked captures the observer and a consistent snapshot under the
// lock; the returned func is invoked after unlocking so observers may call
// back into the session.
func (s *Session) changedLocked() func() {
	fn := s.onChange
	if fn == nil {
		return func() {}
	}
	snap := s.snapshotLocked()
	return func() { fn(snap) }
}
