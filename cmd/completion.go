package cmd

import (
	"flag"

	"github.com/etnz/cashbook/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the commands registered in c, with their flags, for
// shell completion.
func Completion(c *subcommands.Commander, global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(global),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		root.Sub[cmd.Name()] = &complete.Command{
			Flags: flagPredictors(fs),
			Args:  argPredictor(cmd.Name()),
		}
	})
	return root
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		switch f.Name {
		case "kind":
			flags[f.Name] = predict.Set{"stock", "fixed"}
		case "env", "book", "o":
			flags[f.Name] = predict.Files("*")
		default:
			if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
				flags[f.Name] = predict.Nothing
			} else {
				flags[f.Name] = predict.Something
			}
		}
	})
	return flags
}

func argPredictor(name string) complete.Predictor {
	switch name {
	case "import":
		return predict.Files("*")
	case "topic":
		index, err := docs.Index()
		if err != nil {
			return predict.Nothing
		}
		topics := predict.Set{docs.All}
		for _, t := range index {
			topics = append(topics, t.Name)
		}
		return topics
	default:
		return predict.Nothing
	}
}
