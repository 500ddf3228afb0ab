// Package primitives generates the 2D geometry of individual chip elements:
// Xmon crosses, Josephson-junction chains, single junctions, DC SQUIDs,
// meander resonators and flux-bias lines.
//
// Each generator validates its dimensions and builds its shapes in a local
// frame exactly once, at construction. Place returns transformed copies; the
// cached local shapes are never mutated, so one generator can be placed any
// number of times.
//
//	chain, err := primitives.NewJJChain(dims.DefaultJJChain())
//	if err != nil {
//	    return err
//	}
//	shapes := chain.Place(geom.At(15, 0, -45))
package primitives
