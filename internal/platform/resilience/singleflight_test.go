package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	var group SingleFlight[int]
	var calls atomic.Int32
	release := make(chan struct{})

	const callers = 16
	var wg sync.WaitGroup
	var shared atomic.Int32
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err, wasShared := group.Do("match-1", func() (int, error) {
				calls.Add(1)
				<-release
				return 42, nil
			})
			if err != nil || v != 42 {
				t.Errorf("got %d, %v", v, err)
			}
			if wasShared {
				shared.Add(1)
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("fn called %d times, want 1", got)
	}
	if got := shared.Load(); got != callers-1 {
		t.Fatalf("shared results=%d want=%d", got, callers-1)
	}
}

func TestSingleFlight_ErrorsAreNotRemembered(t *testing.T) {
	var group SingleFlight[string]
	boom := errors.New("boom")

	if _, err, _ := group.Do("k", func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	v, err, shared := group.Do("k", func() (string, error) { return "ok", nil })
	if err != nil || v != "ok" || shared {
		t.Fatalf("second call: v=%q err=%v shared=%v", v, err, shared)
	}
}

func TestSingleFlight_ForgetStartsNewCall(t *testing.T) {
	var group SingleFlight[int]
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan int)

	go func() {
		v, _, _ := group.Do("k", func() (int, error) {
			close(started)
			<-release
			return 1, nil
		})
		done <- v
	}()
	<-started

	group.Forget("k")
	v, _, shared := group.Do("k", func() (int, error) { return 2, nil })
	if v != 2 || shared {
		t.Fatalf("expected a fresh call after Forget, got v=%d shared=%v", v, shared)
	}

	close(release)
	if got := <-done; got != 1 {
		t.Fatalf("first caller got %d, want 1", got)
	}
}
