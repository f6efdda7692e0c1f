// Package session binds an authenticated identity to its partner record and the
// partner's live order views.
//
// A Session starts in Loading. Once the partner record arrives it becomes Ready and the
// available and active order views are opened. A missing record puts it in
// ProfileNotFound, which is a state, not a transient error, and closes the order views. SignOut clears every derived
// value before it returns and closes all subscriptions; the session is then unusable.
package session

import (
	"context"
	"errors"
	"sync"

	"bolpurmart/internal/core/application/usecases/queries"
	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/ports"
	"bolpurmart/internal/pkg/errs"
	"bolpurmart/internal/pkg/live"

	"go.uber.org/zap"
)

// ErrSignedOut is returned by Watch on a session that has ended.
var ErrSignedOut = errors.New("session is signed out")

type Phase string

const (
	Loading         Phase = "loading"
	Ready           Phase = "ready"
	ProfileNotFound Phase = "profile_not_found"
	SignedOut       Phase = "signed_out"
)

// State is one snapshot of a session. Err holds the last failed view refresh and is
// cleared by the next successful one.
type State struct {
	Phase           Phase
	PartnerID       kernel.ID
	Profile         *queries.PartnerProfile
	AvailableOrders []queries.OrderView
	ActiveOrders    []queries.OrderView
	Err             error
}

// Views opens the live views a session is made of. *views.Views implements it.
type Views interface {
	AvailableOrders(ctx context.Context, partnerID kernel.ID) (*live.Stream[[]queries.OrderView], error)
	ActiveOrders(ctx context.Context, partnerID kernel.ID) (*live.Stream[[]queries.OrderView], error)
	Profile(ctx context.Context, partnerID kernel.ID) (*live.Stream[queries.PartnerProfile], error)
}

type Session struct {
	views  Views
	logger *zap.Logger
	cancel context.CancelFunc
	onEnd  func()
	done   chan struct{}

	// mu guards everything below and serializes Publish on watchers.
	mu        sync.Mutex
	state     State
	watchers  map[*live.Stream[State]]struct{}
	identity  *live.Stream[*ports.Identity]
	profile   *live.Stream[queries.PartnerProfile]
	available *live.Stream[[]queries.OrderView]
	active    *live.Stream[[]queries.OrderView]
}

// Open starts a session for token. It ends on SignOut, when the identity behind the
// token is signed out, or when ctx is done.
func Open(ctx context.Context, provider ports.SessionProvider, views Views, token string, logger *zap.Logger) (*Session, error) {
	return open(ctx, provider, views, token, logger, nil)
}

func open(
	ctx context.Context,
	provider ports.SessionProvider,
	views Views,
	token string,
	logger *zap.Logger,
	onEnd func(),
) (*Session, error) {
	ctx, cancel := context.WithCancel(ctx)
	identity, err := provider.OnIdentityChange(ctx, token)
	if err != nil {
		cancel()
		return nil, err
	}

	s := &Session{
		views:    views,
		logger:   logger.With(zap.String("component", "session")),
		cancel:   cancel,
		onEnd:    onEnd,
		done:     make(chan struct{}),
		state:    State{Phase: Loading},
		watchers: make(map[*live.Stream[State]]struct{}),
		identity: identity,
	}
	go s.run(ctx)
	return s, nil
}

// State returns the current snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Done is closed once the session has signed out.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Watch streams the session state, starting with the current snapshot. The stream is
// closed after the SignedOut snapshot.
func (s *Session) Watch() (*live.Stream[State], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase == SignedOut {
		return nil, ErrSignedOut
	}

	var w *live.Stream[State]
	w = live.NewStream[State](func() {
		s.mu.Lock()
		delete(s.watchers, w)
		s.mu.Unlock()
	})
	s.watchers[w] = struct{}{}
	w.Publish(s.state)
	return w, nil
}

// SignOut clears the state and closes every subscription of the session. It does not
// revoke the credential; that is the session provider's job.
func (s *Session) SignOut() {
	s.mu.Lock()
	if s.state.Phase == SignedOut {
		s.mu.Unlock()
		return
	}
	s.state = State{Phase: SignedOut}
	closeStream(s.identity)
	closeStream(s.profile)
	closeStream(s.available)
	closeStream(s.active)
	watchers := s.watchers
	s.watchers = nil
	s.mu.Unlock()

	s.cancel()
	close(s.done)

	for w := range watchers {
		w.Publish(State{Phase: SignedOut})
		_ = w.Close()
	}
	if s.onEnd != nil {
		s.onEnd()
	}
}

func (s *Session) run(ctx context.Context) {
	var (
		identityC  = s.identity.Updates()
		profileC   <-chan live.Snapshot[queries.PartnerProfile]
		availableC <-chan live.Snapshot[[]queries.OrderView]
		activeC    <-chan live.Snapshot[[]queries.OrderView]
		partnerID  kernel.ID
	)

	for {
		select {
		case <-s.done:
			return
		case <-ctx.Done():
			s.SignOut()
			return
		case <-s.identity.Done():
			s.SignOut()
			return

		case snap := <-identityC:
			if snap.Err != nil {
				s.update(func(st *State) { st.Err = snap.Err })
				continue
			}
			if snap.Value == nil {
				s.logger.Info("identity signed out")
				s.SignOut()
				return
			}
			if profileC != nil {
				continue
			}
			partnerID = snap.Value.PartnerID
			profile, err := s.views.Profile(ctx, partnerID)
			if err != nil {
				s.update(func(st *State) { st.Err = err })
				continue
			}
			if !s.attach(func() { s.profile = profile }) {
				_ = profile.Close()
				return
			}
			profileC = profile.Updates()
			s.update(func(st *State) { st.PartnerID = partnerID })

		case snap := <-profileC:
			switch {
			case errors.Is(snap.Err, errs.ErrProfileNotFound):
				s.detachOrders()
				availableC, activeC = nil, nil
				s.update(func(st *State) {
					st.Phase = ProfileNotFound
					st.Profile = nil
					st.AvailableOrders = nil
					st.ActiveOrders = nil
					st.Err = nil
				})
			case snap.Err != nil:
				s.update(func(st *State) { st.Err = snap.Err })
			default:
				profile := snap.Value
				s.update(func(st *State) {
					st.Phase = Ready
					st.Profile = &profile
					st.Err = nil
				})
				if availableC != nil {
					continue
				}
				var err error
				availableC, activeC, err = s.openOrders(ctx, partnerID)
				if err != nil {
					if errors.Is(err, ErrSignedOut) {
						return
					}
					s.update(func(st *State) { st.Err = err })
				}
			}

		case snap := <-availableC:
			s.update(func(st *State) {
				if snap.Err != nil {
					st.Err = snap.Err
					return
				}
				st.AvailableOrders = snap.Value
				st.Err = nil
			})

		case snap := <-activeC:
			s.update(func(st *State) {
				if snap.Err != nil {
					st.Err = snap.Err
					return
				}
				st.ActiveOrders = snap.Value
				st.Err = nil
			})
		}
	}
}

func (s *Session) openOrders(ctx context.Context, partnerID kernel.ID) (
	<-chan live.Snapshot[[]queries.OrderView],
	<-chan live.Snapshot[[]queries.OrderView],
	error,
) {
	available, err := s.views.AvailableOrders(ctx, partnerID)
	if err != nil {
		return nil, nil, err
	}
	active, err := s.views.ActiveOrders(ctx, partnerID)
	if err != nil {
		_ = available.Close()
		return nil, nil, err
	}
	if !s.attach(func() { s.available, s.active = available, active }) {
		_ = available.Close()
		_ = active.Close()
		return nil, nil, ErrSignedOut
	}
	return available.Updates(), active.Updates(), nil
}

// detachOrders closes the order views; a session without a profile has no orders.
// They are opened again if the profile comes back.
func (s *Session) detachOrders() {
	s.mu.Lock()
	available, active := s.available, s.active
	s.available, s.active = nil, nil
	s.mu.Unlock()

	closeStream(available)
	closeStream(active)
}

// attach runs set under the lock unless the session has signed out.
func (s *Session) attach(set func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase == SignedOut {
		return false
	}
	set()
	return true
}

func (s *Session) update(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase == SignedOut {
		return
	}
	fn(&s.state)
	for w := range s.watchers {
		w.Publish(s.state)
	}
}

func closeStream[T any](stream *live.Stream[T]) {
	if stream != nil {
		_ = stream.Close()
	}
}
