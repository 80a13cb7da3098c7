// Parses flags and dispatches the hearth commands.
//
// The command surface is thin glue over the stage packages:
//
//	init         provision the machine and build container
//	build        fetch and build one recipe
//	build-all    build every discovered recipe
//	rebuild      clear the completion marker and build again
//	package      run a recipe's package steps
//	make-patch   seed a mutable workdir from the clean snapshot
//	save-patch   capture workdir edits as a patch file
//
// Build-family commands run their real work inside the isolation
// container: invoked outside it they converge the environment and
// re-invoke themselves with the hidden --in-container flag.
package cli
