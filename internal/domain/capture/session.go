package capture

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	xdraw "golang.org/x/image/draw"
)

type State string

const (
	StateIdle      State = "idle"
	StateActive    State = "active"
	StateCountdown State = "countdown"
	StateCaptured  State = "captured"
	StateError     State = "error"
)

// Snapshots are always taken at the acquisition resolution, independent of
// how the preview is rendered.
const (
	FrameWidth  = 640
	FrameHeight = 480

	countdownTicks = 3
)

// AcquireErrorMessage is the fixed user-visible message for a denied or
// unavailable device.
const AcquireErrorMessage = "Camera access denied or unavailable. Please allow camera permissions."

var (
	ErrNotActive        = errors.New("no active camera stream")
	ErrCountdownRunning = errors.New("countdown already running")
	ErrAlreadyCaptured  = errors.New("capture already completed")
	ErrNoPhoto          = errors.New("no captured photo")
)

// Subject identifies the employee a photo is being taken for.
type Subject struct {
	ID        string
	FirstName string
	LastName  string
}

// Session drives one camera capture flow:
//
//	idle -> active -> countdown -> captured
//	idle/error -> (failed acquire) -> error
//	active -> (stop) -> idle
//
// The device handle is released on every exit path: capture, stop, error and
// teardown. At most one handle is ever held; a second acquire while one is
// active or in flight is a no-op.
type Session struct {
	mu        sync.Mutex
	opener    Opener
	subject   Subject
	tick      time.Duration
	state     State
	device    Device
	acquiring bool
	stopAsked bool
	remaining int
	lastError string
	photo     *Photo
	cancel    context.CancelFunc
	onCapture func(*Photo)
}

func NewSession(opener Opener, subject Subject) *Session {
	return &Session{
		opener:  opener,
		subject: subject,
		tick:    time.Second,
		state:   StateIdle,
	}
}

// SetTickInterval overrides the countdown tick length. The default is the
// one-second cadence the countdown overlay displays.
func (s *Session) SetTickInterval(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick = d
}

// OnCapture registers a callback invoked once per completed capture, after
// the device has been released.
func (s *Session) OnCapture(fn func(*Photo)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onCapture = fn
}

// Status reports the current state, the countdown ticks remaining and the
// last user-visible error message.
func (s *Session) Status() (State, int, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.remaining, s.lastError
}

func (s *Session) Subject() Subject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subject
}

// Acquire opens the device handle. Calling it while a stream is already
// active, or while a previous acquisition is still in flight, does not open
// a second handle.
func (s *Session) Acquire(ctx context.Context) error {
	s.mu.Lock()
	switch {
	case s.acquiring, s.state == StateActive, s.state == StateCountdown:
		s.mu.Unlock()
		return nil
	case s.state == StateCaptured:
		s.mu.Unlock()
		return ErrAlreadyCaptured
	}
	s.acquiring = true
	s.stopAsked = false
	s.lastError = ""
	opener := s.opener
	s.mu.Unlock()

	device, err := opener(ctx, FrameWidth, FrameHeight)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.acquiring = false
	if err != nil {
		s.state = StateError
		s.lastError = AcquireErrorMessage
		return errors.New(AcquireErrorMessage)
	}
	if s.stopAsked {
		// Stop raced the acquisition: release immediately.
		_ = device.Close()
		s.state = StateIdle
		return nil
	}
	s.device = device
	s.state = StateActive
	return nil
}

// StartCountdown begins the 3-tick countdown; the frame is captured when it
// reaches zero. The countdown is cancelled deterministically by Stop or
// Teardown.
func (s *Session) StartCountdown(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateCountdown {
		s.mu.Unlock()
		return ErrCountdownRunning
	}
	if s.state != StateActive {
		s.mu.Unlock()
		return ErrNotActive
	}
	s.state = StateCountdown
	s.remaining = countdownTicks
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	tick := s.tick
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(tick)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				if s.countdownTick() {
					return
				}
			}
		}
	}()
	return nil
}

// countdownTick advances the countdown by one tick, capturing at zero.
// Reports whether the countdown goroutine should exit.
func (s *Session) countdownTick() bool {
	s.mu.Lock()
	if s.state != StateCountdown {
		s.mu.Unlock()
		return true
	}
	s.remaining--
	if s.remaining > 0 {
		s.mu.Unlock()
		return false
	}
	photo, _ := s.captureLocked()
	fn := s.onCapture
	s.mu.Unlock()
	if photo != nil && fn != nil {
		fn(photo)
	}
	return true
}

// Snap captures immediately, skipping the countdown.
func (s *Session) Snap() (*Photo, error) {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return nil, ErrNotActive
	}
	photo, err := s.captureLocked()
	fn := s.onCapture
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if fn != nil {
		fn(photo)
	}
	return photo, nil
}

// captureLocked grabs a frame, scales it to the capture resolution, releases
// the device and moves to the terminal captured state. Caller holds the lock.
func (s *Session) captureLocked() (*Photo, error) {
	frame, err := s.device.Frame()
	if err != nil {
		s.releaseLocked()
		s.state = StateError
		s.lastError = "Camera is connected, but the frame could not be read. Please try again."
		return nil, err
	}

	rgba := image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight))
	xdraw.CatmullRom.Scale(rgba, rgba.Bounds(), frame, frame.Bounds(), xdraw.Over, nil)

	s.releaseLocked()
	s.state = StateCaptured
	s.remaining = 0
	s.photo = &Photo{
		EmployeeID: s.subject.ID,
		FirstName:  s.subject.FirstName,
		LastName:   s.subject.LastName,
		Filter:     FilterNone,
		Taken:      time.Now(),
		img:        rgba,
	}
	return s.photo, nil
}

// releaseLocked closes the device handle and cancels any pending countdown.
// Safe to call repeatedly; the handle is closed exactly once.
func (s *Session) releaseLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.device != nil {
		_ = s.device.Close()
		s.device = nil
	}
}

// Stop releases the device without capturing. Stopping an idle session is a
// no-op; stopping during a countdown cancels it.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.acquiring {
		s.stopAsked = true
		return
	}
	switch s.state {
	case StateIdle, StateCaptured:
		return
	}
	s.releaseLocked()
	s.state = StateIdle
	s.remaining = 0
	s.lastError = ""
}

// Photo returns the captured photo, if any.
func (s *Session) Photo() (*Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.photo == nil {
		return nil, ErrNoPhoto
	}
	return s.photo, nil
}

// Teardown releases every resource and returns the session to idle. It is
// invoked on every exit path from the owning screen, so a navigation away
// can never leave the camera held or a countdown ticking.
func (s *Session) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.acquiring {
		s.stopAsked = true
	}
	s.releaseLocked()
	s.state = StateIdle
	s.remaining = 0
	s.lastError = ""
	s.photo = nil
}
