package lasso

// EngineOption configures an Engine during creation.
//
// Example:
//
//	eng := lasso.NewEngine(
//	    lasso.WithMargins(lasso.Margins{Top: 10, Right: 10, Bottom: 30, Left: 40}),
//	    lasso.WithFrameHandler(func(f lasso.Frame) { comp.Render(f) }),
//	)
type EngineOption func(*engineOptions)

type engineOptions struct {
	margins Margins
	onFrame func(Frame)
}

func defaultEngineOptions() engineOptions {
	return engineOptions{
		margins: DefaultMargins(),
	}
}

// WithMargins sets the inset between the drawing area edge and the plot
// box used when building coordinate transforms.
func WithMargins(m Margins) EngineOption {
	return func(o *engineOptions) { o.margins = m }
}

// WithFrameHandler sets the callback invoked for each frame the scheduler
// fires. The handler receives a fully consistent snapshot of the frame
// inputs; it is where the host hands the frame to a compositor.
func WithFrameHandler(fn func(Frame)) EngineOption {
	return func(o *engineOptions) { o.onFrame = fn }
}
