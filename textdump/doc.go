// Package textdump writes a Library to a directory of plain text files for
// use by other numeric environments.
//
// The layout is one-directional; nothing in this module reads it back.
//
//	metadata_independent_variables.txt    dimension names, one per line
//	metadata_dependent_variables.txt      property names, spaces replaced by underscores
//	metadata_user_defined_attributes.txt  extra attributes as YAML
//	bulkdata_<dimension>.txt              dimension values, one per line
//	bulkdata_<property>.txt               flattened property values, one per line
//
// Numbers are written as %.18e. Properties are flattened column-major
// (first axis fastest) unless WithOrder says otherwise. Writing is not
// transactional: a failure partway leaves the files written so far.
package textdump
