package diffusion

import dithergo "github.com/ericlevine/dithergo"

func init() {
	dithergo.RegisterDitherer(dithergo.MethodFloydSteinberg, func() dithergo.Ditherer { return NewSequential() })
	dithergo.RegisterDitherer(dithergo.MethodWavefront, func() dithergo.Ditherer { return NewWavefront() })
	dithergo.RegisterDitherer(dithergo.MethodThreshold, func() dithergo.Ditherer { return NewThreshold() })
}
