// Package extract reads the three labeled numeric fields of an encoded
// triple out of a semi-structured text blob.
//
// Two spellings are recognized for each field, shown here for the default
// "zone42" prefix:
//
//	zone42:godelNumber "42"
//	<span property="zone42:godelNumber" content="42"></span>
//
// Extraction is all or nothing: either every field is found and parsed, or
// a *MalformedInputError is returned and no partial result escapes.
package extract
