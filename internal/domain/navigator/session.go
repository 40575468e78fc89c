package navigator

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"employeehub/internal/domain/capture"
	"employeehub/internal/domain/directory"
)

// ListState is the list screen's transient UI state. It is reinitialized on
// every entry to the list screen (reset-always policy); only the selected
// employee and the captured photo are threaded across transitions.
type ListState struct {
	Search     string `json:"search"`
	Department string `json:"department"`
	SortKey    string `json:"sortKey"`
	Page       int    `json:"page"`
}

func defaultListState() ListState {
	return ListState{Department: directory.AllDepartments, SortKey: directory.SortByName}
}

// ErrBadTransition is returned for navigation the graph does not allow or
// whose target precondition is unmet.
type ErrBadTransition struct {
	From Screen
	To   Screen
	Why  string
}

func (e ErrBadTransition) Error() string {
	return fmt.Sprintf("cannot navigate %s -> %s: %s", e.From, e.To, e.Why)
}

// Session is the navigation state of one authenticated login.
type Session struct {
	mu       sync.Mutex
	id       string
	user     string
	lastSeen time.Time
	screen   Screen
	list     ListState
	selected string
	photo    *capture.Photo
	capture  *capture.Session
}

func newSession(id, user string) *Session {
	return &Session{id: id, user: user, lastSeen: time.Now(), screen: ScreenLogin, list: defaultListState()}
}

func (s *Session) ID() string {
	return s.id
}

// User is the account name this session was opened for. Session ids are
// minted fresh on every login; anything that must outlive the session, like
// the theme preference, keys off the user instead.
func (s *Session) User() string {
	return s.user
}

// touch marks the session as recently used so the registry sweep keeps it.
func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// Navigate moves to another screen, applying entry and exit side effects:
// entering the list resets its local state, leaving the details/photo pair
// tears down the capture session, and retake or back-navigation away from
// the photo screen discards the captured image.
func (s *Session) Navigate(to Screen) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !ValidScreen(to) {
		return ErrBadTransition{From: s.screen, To: to, Why: "unknown screen"}
	}
	if !CanNavigate(s.screen, to) {
		return ErrBadTransition{From: s.screen, To: to, Why: "not allowed"}
	}
	if to == ScreenDetails && s.selected == "" {
		return ErrBadTransition{From: s.screen, To: to, Why: "no employee selected"}
	}
	if to == ScreenPhoto && s.photo == nil {
		return ErrBadTransition{From: s.screen, To: to, Why: "no captured photo"}
	}

	from := s.screen
	s.screen = to

	if from == ScreenPhoto && to != ScreenPhoto {
		// Retake or back: the photo exists only on its result screen.
		s.photo = nil
	}
	if (from == ScreenDetails || from == ScreenPhoto) && to != ScreenDetails && to != ScreenPhoto {
		s.teardownCaptureLocked()
	}

	switch to {
	case ScreenList:
		s.list = defaultListState()
		s.selected = ""
	case ScreenLogin:
		s.resetLocked()
	}
	return nil
}

// FinishLoading completes the post-login data load. A late completion after
// logout is ignored.
func (s *Session) FinishLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen == ScreenLoading {
		s.screen = ScreenList
		s.list = defaultListState()
	}
}

// Select records the employee the details screen will show. Only meaningful
// on the list screen.
func (s *Session) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != ScreenList {
		return ErrBadTransition{From: s.screen, To: ScreenDetails, Why: "selection happens on the list screen"}
	}
	s.selected = id
	return nil
}

func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// UpdateList applies the list controls. Changing search or department
// resets the page index; changing the sort key does not.
func (s *Session) UpdateList(search, department, sortKey *string, page *int) ListState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if search != nil && *search != s.list.Search {
		s.list.Search = *search
		s.list.Page = 0
	}
	if department != nil && *department != s.list.Department {
		s.list.Department = *department
		s.list.Page = 0
	}
	if sortKey != nil {
		s.list.SortKey = *sortKey
	}
	if page != nil {
		s.list.Page = *page
	}
	return s.list
}

func (s *Session) List() ListState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list
}

// AttachCapture installs the capture session for the current details screen,
// wiring its completion into the details -> photo transition. Observers run
// after the transition, once per completed capture.
func (s *Session) AttachCapture(cs *capture.Session, observers ...func(*capture.Photo)) {
	s.mu.Lock()
	if s.capture != nil {
		s.capture.Teardown()
	}
	s.capture = cs
	s.mu.Unlock()

	cs.OnCapture(func(p *capture.Photo) {
		s.photoCaptured(p)
		for _, observe := range observers {
			observe(p)
		}
	})
}

func (s *Session) Capture() *capture.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capture
}

func (s *Session) Photo() (*capture.Photo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.photo, s.photo != nil
}

// photoCaptured threads a completed capture into the navigator. If the user
// already navigated away the result is dropped; the capture session has
// released the device either way.
func (s *Session) photoCaptured(p *capture.Photo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != ScreenDetails {
		return
	}
	s.photo = p
	s.screen = ScreenPhoto
}

// Teardown releases everything the session holds. Used on logout and
// session eviction so no exit path leaves a device handle behind.
func (s *Session) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.teardownCaptureLocked()
	s.screen = ScreenLogin
	s.list = defaultListState()
	s.selected = ""
	s.photo = nil
}

func (s *Session) teardownCaptureLocked() {
	if s.capture != nil {
		s.capture.Teardown()
		s.capture = nil
	}
}

// Registry tracks the live sessions by id.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func (r *Registry) Create(user string) *Session {
	sess := newSession(uuid.NewString(), user)
	r.mu.Lock()
	r.sessions[sess.id] = sess
	r.mu.Unlock()
	return sess
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		sess.touch()
	}
	return sess, ok
}

// Delete evicts a session, tearing down whatever it still holds.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	sess, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		sess.Teardown()
	}
}

// Sweep evicts every session not touched within maxIdle, tearing each one
// down so an abandoned token cannot keep a device handle or a captured frame
// alive past the token's own lifetime. Returns the number evicted.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	r.mu.Lock()
	var expired []*Session
	for id, sess := range r.sessions {
		sess.mu.Lock()
		stale := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if stale {
			delete(r.sessions, id)
			expired = append(expired, sess)
		}
	}
	r.mu.Unlock()

	for _, sess := range expired {
		sess.Teardown()
	}
	return len(expired)
}
