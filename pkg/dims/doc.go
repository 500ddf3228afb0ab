// Package dims defines the dimension records that parameterize every chip
// component, their defaults, validation, and TOML persistence.
//
// Records are plain values. A composite owns copies of its constituent
// records, so mutating a config after constructing a component never changes
// the component. All lengths are in the same arbitrary drawing unit
// (micrometre-like); angles are degrees.
//
// Call Validate before constructing a component: a non-positive length or an
// out-of-range arm index is rejected with an error naming the offending key.
//
//	cfg, err := dims.LoadFile("chip.toml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Lattice.Rows, cfg.Fluxonium.Chain.Gap)
package dims
