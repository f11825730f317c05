// Package jsdoc parses JSDoc-style documentation comments out of source text.
//
// A doc comment starts with "/**" and ends with "*/".
// Its free text forms a [Description],
// and every line starting with "@" begins a [Tag]
// which runs until the next tag line.
//
//	/**
//	 * Adds two numbers.
//	 *
//	 * @param {number} a
//	 * @example
//	 *   <example lang="js">add(1, 2)</example>
//	 */
//	function add(a, b) { return a + b }
//
// The code following each comment, up to the next doc comment,
// is captured as well.
package jsdoc
