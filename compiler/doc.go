/*

Process of generation

Unit Description (desc, toml) ->
	build ->
C Unit Model (cir) ->
	verify (optional) ->
Diagnostics

C Unit Model (cir) ->
	emit ->
Header Text (.h) + Source Text (.c)

C Unit Model (cir) ->
	lower ->
LLVM IR Declarations (llvm)

*/
package compiler
