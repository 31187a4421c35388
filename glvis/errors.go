package glvis

import "errors"

var (
	// ErrInvalidMesh indicates non-positive mesh sizes or spacing.
	ErrInvalidMesh = errors.New("glvis: invalid mesh size")

	// ErrUnsupportedDim indicates a grid that is neither 2D nor 3D.
	ErrUnsupportedDim = errors.New("glvis: only 2D and 3D grids are supported")

	// ErrUnsupportedVarType indicates a variable that is neither cell nor
	// node centred, or a variable number the grid does not declare.
	ErrUnsupportedVarType = errors.New("glvis: only cell and node variables are supported")

	// ErrTransform indicates a transform list whose length or entries do not
	// match the grid.
	ErrTransform = errors.New("glvis: invalid transform")

	// ErrValueShape indicates value views missing for a box or not covering
	// the indices the box needs.
	ErrValueShape = errors.New("glvis: value view does not cover box")
)
