package buckets

// Feedback plays discrete haptic patterns. Implementations wrap the host's
// haptic engine.
type Feedback interface {
	Play(h Haptic)
}

// FeedbackFunc adapts a function to Feedback.
type FeedbackFunc func(h Haptic)

// Play calls f(h).
func (f FeedbackFunc) Play(h Haptic) { f(h) }

type nopFeedback struct{}

func (nopFeedback) Play(Haptic) {}

// GatedFeedback forwards to Out only while Enabled. The inbox flips Enabled
// from the user's haptics setting.
type GatedFeedback struct {
	Out     Feedback
	Enabled bool
}

// Play forwards h when enabled.
func (g *GatedFeedback) Play(h Haptic) {
	if g == nil || !g.Enabled || g.Out == nil {
		return
	}
	g.Out.Play(h)
}
