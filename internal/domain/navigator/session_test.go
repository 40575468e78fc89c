package navigator

import (
	"context"
	"testing"
	"time"

	"employeehub/internal/domain/capture"
	"employeehub/internal/domain/directory"
)

func loggedInSession(t *testing.T) *Session {
	t.Helper()
	sess := NewRegistry().Create("testuser")
	if err := sess.Navigate(ScreenLoading); err != nil {
		t.Fatalf("login: %v", err)
	}
	sess.FinishLoading()
	if sess.Screen() != ScreenList {
		t.Fatalf("expected list after load, got %v", sess.Screen())
	}
	return sess
}

func TestNavigationGraph(t *testing.T) {
	tests := []struct {
		from    Screen
		to      Screen
		allowed bool
	}{
		{ScreenLogin, ScreenLoading, true},
		{ScreenLogin, ScreenList, false},
		{ScreenLoading, ScreenList, true},
		{ScreenList, ScreenChart, true},
		{ScreenList, ScreenMap, true},
		{ScreenChart, ScreenMap, false},
		{ScreenChart, ScreenList, true},
		{ScreenMap, ScreenLogin, true},
		{ScreenList, ScreenPhoto, false},
		{ScreenDetails, ScreenPhoto, true},
		{ScreenPhoto, ScreenDetails, true},
		{ScreenPhoto, ScreenChart, false},
	}
	for _, tt := range tests {
		if got := CanNavigate(tt.from, tt.to); got != tt.allowed {
			t.Errorf("CanNavigate(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
	if ValidScreen("dashboard") {
		t.Error("unknown screen accepted")
	}
}

func TestNavigateRejectsUnreachableScreens(t *testing.T) {
	sess := NewRegistry().Create("testuser")

	if err := sess.Navigate(ScreenChart); err == nil {
		t.Fatal("login -> chart must be refused")
	}
	if err := sess.Navigate("dashboard"); err == nil {
		t.Fatal("unknown screen must be refused")
	}
	if sess.Screen() != ScreenLogin {
		t.Fatalf("failed navigation moved the session to %v", sess.Screen())
	}
}

func TestDetailsRequiresSelection(t *testing.T) {
	sess := loggedInSession(t)

	if err := sess.Navigate(ScreenDetails); err == nil {
		t.Fatal("details without a selection must be refused")
	}
	if err := sess.Select("42"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := sess.Navigate(ScreenDetails); err != nil {
		t.Fatalf("details after selection: %v", err)
	}
	if err := sess.Select("7"); err == nil {
		t.Fatal("selection off the list screen must be refused")
	}
}

func TestPhotoScreenRequiresCapturedPhoto(t *testing.T) {
	sess := loggedInSession(t)
	if err := sess.Select("1"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := sess.Navigate(ScreenDetails); err != nil {
		t.Fatalf("details: %v", err)
	}
	if err := sess.Navigate(ScreenPhoto); err == nil {
		t.Fatal("photo screen without a captured photo must be refused")
	}
}

func TestCaptureAdvancesToPhotoScreen(t *testing.T) {
	sess := loggedInSession(t)
	if err := sess.Select("3"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := sess.Navigate(ScreenDetails); err != nil {
		t.Fatalf("details: %v", err)
	}

	cs := capture.NewSession(capture.OpenSynthetic, capture.Subject{ID: "3", FirstName: "Mia", LastName: "Wong"})
	sess.AttachCapture(cs)
	if err := cs.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, err := cs.Snap(); err != nil {
		t.Fatalf("snap: %v", err)
	}

	if sess.Screen() != ScreenPhoto {
		t.Fatalf("capture did not advance to photo screen, got %v", sess.Screen())
	}
	photo, ok := sess.Photo()
	if !ok || photo.Filename() != "Mia_Wong_photo.png" {
		t.Fatalf("photo = %+v ok = %v", photo, ok)
	}

	// Retake: back to details drops the photo so a fresh capture can start.
	if err := sess.Navigate(ScreenDetails); err != nil {
		t.Fatalf("retake: %v", err)
	}
	if _, ok := sess.Photo(); ok {
		t.Fatal("retake kept the previous photo")
	}
}

func TestLateCaptureAfterLeavingDetailsIsDropped(t *testing.T) {
	sess := loggedInSession(t)
	if err := sess.Select("5"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := sess.Navigate(ScreenDetails); err != nil {
		t.Fatalf("details: %v", err)
	}

	cs := capture.NewSession(capture.OpenSynthetic, capture.Subject{ID: "5"})
	sess.AttachCapture(cs)
	if err := cs.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if err := sess.Navigate(ScreenList); err != nil {
		t.Fatalf("back to list: %v", err)
	}

	// The navigator already tore this capture session down; a result that
	// somehow completes anyway must not move the screen.
	sess.photoCaptured(&capture.Photo{EmployeeID: "5"})
	if sess.Screen() != ScreenList {
		t.Fatalf("late capture moved the screen to %v", sess.Screen())
	}
	if _, ok := sess.Photo(); ok {
		t.Fatal("late capture left a photo behind")
	}
}

func TestListStateResetsOnEntry(t *testing.T) {
	sess := loggedInSession(t)

	search, dept := "gar", "Engineering"
	state := sess.UpdateList(&search, &dept, nil, nil)
	if state.Search != "gar" || state.Department != "Engineering" {
		t.Fatalf("update not applied: %+v", state)
	}

	if err := sess.Navigate(ScreenChart); err != nil {
		t.Fatalf("chart: %v", err)
	}
	if err := sess.Navigate(ScreenList); err != nil {
		t.Fatalf("back: %v", err)
	}
	state = sess.List()
	if state.Search != "" || state.Department != directory.AllDepartments ||
		state.SortKey != directory.SortByName || state.Page != 0 {
		t.Fatalf("list state not reset on entry: %+v", state)
	}
}

func TestSearchAndDepartmentChangesResetPage(t *testing.T) {
	sess := loggedInSession(t)

	page := 2
	sess.UpdateList(nil, nil, nil, &page)
	if sess.List().Page != 2 {
		t.Fatalf("page not applied: %+v", sess.List())
	}

	search := "smith"
	if got := sess.UpdateList(&search, nil, nil, nil); got.Page != 0 {
		t.Fatalf("search change kept page %d", got.Page)
	}

	sess.UpdateList(nil, nil, nil, &page)
	dept := "Finance"
	if got := sess.UpdateList(nil, &dept, nil, nil); got.Page != 0 {
		t.Fatalf("department change kept page %d", got.Page)
	}

	// Sorting and re-submitting the same search keep the page.
	sess.UpdateList(nil, nil, nil, &page)
	sort := directory.SortBySalary
	if got := sess.UpdateList(&search, nil, &sort, nil); got.Page != 2 || got.SortKey != directory.SortBySalary {
		t.Fatalf("sort change reset page: %+v", got)
	}
}

func TestLogoutResetsEverything(t *testing.T) {
	sess := loggedInSession(t)
	if err := sess.Select("9"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := sess.Navigate(ScreenDetails); err != nil {
		t.Fatalf("details: %v", err)
	}
	cs := capture.NewSession(capture.OpenSynthetic, capture.Subject{ID: "9", FirstName: "N", LastName: "O"})
	sess.AttachCapture(cs)
	if err := cs.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, err := cs.Snap(); err != nil {
		t.Fatalf("snap: %v", err)
	}

	if err := sess.Navigate(ScreenLogin); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sess.Screen() != ScreenLogin {
		t.Fatalf("screen = %v", sess.Screen())
	}
	if _, ok := sess.Photo(); ok {
		t.Fatal("logout kept the photo")
	}
	if sess.Selected() != "" {
		t.Fatal("logout kept the selection")
	}
	if sess.Capture() != nil {
		t.Fatal("logout kept the capture session")
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	a := reg.Create("testuser")
	b := reg.Create("testuser")
	if a.ID() == b.ID() {
		t.Fatal("session ids collide")
	}
	if a.User() != "testuser" {
		t.Fatalf("user = %q", a.User())
	}

	got, ok := reg.Get(a.ID())
	if !ok || got != a {
		t.Fatalf("lookup returned %v, %v", got, ok)
	}

	reg.Delete(a.ID())
	if _, ok := reg.Get(a.ID()); ok {
		t.Fatal("deleted session still resolvable")
	}
	if _, ok := reg.Get("nope"); ok {
		t.Fatal("unknown id resolved")
	}
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	reg := NewRegistry()
	stale := reg.Create("testuser")
	fresh := reg.Create("testuser")

	// Walk the stale session to the details screen with an open device, the
	// worst thing an abandoned token can leave behind.
	if err := stale.Navigate(ScreenLoading); err != nil {
		t.Fatalf("login: %v", err)
	}
	stale.FinishLoading()
	if err := stale.Select("2"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := stale.Navigate(ScreenDetails); err != nil {
		t.Fatalf("details: %v", err)
	}
	cs := capture.NewSession(capture.OpenSynthetic, capture.Subject{ID: "2"})
	stale.AttachCapture(cs)
	if err := cs.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	stale.mu.Lock()
	stale.lastSeen = time.Now().Add(-9 * time.Hour)
	stale.mu.Unlock()

	if n := reg.Sweep(8 * time.Hour); n != 1 {
		t.Fatalf("swept %d sessions, want 1", n)
	}
	if _, ok := reg.Get(stale.ID()); ok {
		t.Fatal("evicted session still resolvable")
	}
	if _, ok := reg.Get(fresh.ID()); !ok {
		t.Fatal("live session swept")
	}
	if state, _, _ := cs.Status(); state != capture.StateIdle {
		t.Fatalf("eviction left the capture session in %v", state)
	}
	if stale.Capture() != nil {
		t.Fatal("eviction kept the capture session attached")
	}

	// A lookup counts as activity and resets the idle clock.
	fresh.mu.Lock()
	fresh.lastSeen = time.Now().Add(-9 * time.Hour)
	fresh.mu.Unlock()
	reg.Get(fresh.ID())
	if n := reg.Sweep(8 * time.Hour); n != 0 {
		t.Fatalf("swept %d sessions after a lookup, want 0", n)
	}
}
