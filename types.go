package sprout

import (
	"github.com/jward/sprout/internal/model"
	"github.com/jward/sprout/internal/store"
)

// Public type aliases for internal types used in the library API. These are
// Go type aliases (=) — identical to the internal types at compile time.
// External consumers use these names; no conversion is needed.

type Store = store.Store
type File = store.File
type TypeDecl = store.TypeDecl
type PropertyGroup = store.PropertyGroup
type Property = store.Property

type Universe = model.Universe
type Element = model.Element
type Type = model.Type
type Kind = model.Kind
type TypeElement = model.TypeElement
type FieldElement = model.FieldElement
type PackageElement = model.PackageElement
type DeclaredType = model.DeclaredType
type PrimitiveType = model.PrimitiveType
