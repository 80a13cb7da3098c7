package recipe

import "errors"

var (
	ErrNoSuchRecipe  = errors.New("no such recipe")
	ErrNoRecipes     = errors.New("no recipes directory")
	ErrInvalidRecipe = errors.New("invalid recipe")
)
