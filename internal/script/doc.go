// Package script runs Lua line filters against chunked strings.
//
// Scripts execute in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. Functions that load code from disk or from
// strings are removed, and print is routed to the diagnostic logger so it
// cannot corrupt filter output.
//
// The global module "xps" exposes chunked strings to Lua. Indices are
// 0-based, as they are in Go:
//
//	xps.new(text)            -> s
//	xps.len(s)               -> n
//	xps.byte_at(s, i)        -> b or nil when out of range
//	xps.set_byte(s, i, b)    -> raises an error when out of range
//	xps.slice(s, start[, stop])
//	xps.concat(a, b, ...)
//	xps.compare(a, b)        -> -1, 0 or 1
//	xps.find(s, pat[, start]) -> i or nil
//	xps.text(s)              -> Lua string
//	xps.encode(s)            -> wire bytes as a Lua string
//	xps.decode(bytes)        -> s, or nil and an error message
//
// Values support #s, s .. t, ==, <, <=, tostring(s) and method calls such
// as s:find("x"). Functions taking a string accept Lua strings too.
//
// A filter script defines a global function:
//
//	function filter(line)
//	  return line:slice(0, 5) .. "!"
//	end
//
// The result may be a Lua string, an xps value, or nil for an empty line.
package script
