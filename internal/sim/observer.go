package sim

// Observer receives a read-only view of each frame after it has been
// simulated. Implementations must not modify or retain obs; it is reused
// on the next frame. With sections enabled Observe runs concurrently with
// collision counting.
type Observer interface {
	Observe(frame int, p Player, obs []Obstacle)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(frame int, p Player, obs []Obstacle)

// Observe calls f.
func (f ObserverFunc) Observe(frame int, p Player, obs []Obstacle) {
	f(frame, p, obs)
}

// Discard ignores every frame.
var Discard Observer = ObserverFunc(func(int, Player, []Obstacle) {})

// Observers fans a frame out to several observers in order.
type Observers []Observer

// Observe forwards the frame to each observer.
func (list Observers) Observe(frame int, p Player, obs []Obstacle) {
	for _, o := range list {
		o.Observe(frame, p, obs)
	}
}
