// Package comets reads, writes and prepares the input files of the COMETS
// community metabolic simulation engine.
//
// The Service facade combines the model, layout and parameter stores:
//
//	srv := comets.New(comets.WithConfig(cfg))
//	model, issues, err := srv.LoadModel(ctx, "iJO1366.xml")
//	l := srv.NewLayout(model)
//	run, err := srv.Prepare(ctx, l, nil, "/tmp/run")
//
// Models are read from the native block format or from SBML and always
// written in the native format. Row level problems are returned as
// types.Issues; Config.Strict turns them into errors.
package comets
