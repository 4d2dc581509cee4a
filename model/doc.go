// Package model groups the in-memory representation of engine inputs: the
// metabolic models in metabolic, the world layout in layout, the parameter
// table in params and the shared issue and number types in types.
package model
