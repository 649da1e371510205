package ports

import "github.com/aretw0/bombrisk/pkg/domain"

// Surface is the rendering container a gauge draws into.
// Render is called with the full view every time something visible changes.
type Surface interface {
	Render(view domain.View) error
}

// SurfaceFunc adapts a plain function to a Surface.
type SurfaceFunc func(view domain.View) error

func (f SurfaceFunc) Render(view domain.View) error { return f(view) }

// Clearer is implemented by surfaces that can be emptied when a gauge is destroyed.
type Clearer interface {
	Clear() error
}

// RandomSource supplies uniformly distributed integers in [0, n).
// *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}
