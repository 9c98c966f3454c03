package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jyesselm/x3dna/config"
	"github.com/jyesselm/x3dna/fixtures"
	"github.com/jyesselm/x3dna/model"
	"github.com/jyesselm/x3dna/template"
	"github.com/jyesselm/x3dna/x3dna"
)

/******************************************************************************
This is the entry point for the x3dna command line utility. Like poly's own
cmd/poly/main.go, this is a thin demonstration front-end: it runs the two
library protocols (find-pair, analyze) against programmatically built
fixture structures rather than a PDB/mmCIF file, since coordinate-file
parsing is outside this library's scope.
******************************************************************************/

func main() {
	run(os.Args)
}

func run(args []string) {
	app := application()
	if err := app.Run(args); err != nil {
		log.Fatal(err)
	}
}

var fixtureBuilders = map[string]func() *model.Structure{
	"b-dna-decamer": fixtures.IdealBDNADecamer,
	"a-rna-hexamer": fixtures.AFormRNAHexamer,
	"circular":      fixtures.CircularClosure,
	"modified-pair": fixtures.ModifiedBasePair,
	"isolated":      fixtures.IsolatedNucleotide,
	"three-way":     fixtures.ThreeWayJunction,
}

func application() *cli.App {
	return &cli.App{
		Name:  "x3dna",
		Usage: "Find and analyze nucleic-acid base pairs and base-pair steps.",

		Commands: []*cli.Command{
			{
				Name:  "find-pair",
				Usage: "Run the find-pair protocol against a named fixture structure.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "structure", Value: "b-dna-decamer", Usage: "Which fixture structure to analyze."},
				},
				Action: runFindPair,
			},
			{
				Name:  "analyze",
				Usage: "Run the analyze protocol over every consecutive pair in a named fixture's two-chain ladder.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "structure", Value: "b-dna-decamer", Usage: "Which fixture structure to analyze."},
				},
				Action: runAnalyze,
			},
		},
	}
}

func loadFixture(name string) (*model.Structure, error) {
	build, ok := fixtureBuilders[name]
	if !ok {
		return nil, fmt.Errorf("x3dna: unknown fixture %q", name)
	}
	return build(), nil
}

func runFindPair(c *cli.Context) error {
	s, err := loadFixture(c.String("structure"))
	if err != nil {
		return err
	}
	lib := template.NewLibrary(template.InMemoryLoader{})
	result, err := x3dna.FindPair(s, config.NewDefault(), lib, nil)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d pairs, %d helix segments\n", s.ID, len(result.Pairs), len(result.Segments))
	for i, seg := range result.Segments {
		fmt.Printf("  segment %d: %d pairs, circular=%v, break=%v\n", i, seg.Len(), seg.IsCircular, seg.HasBreak)
	}
	return nil
}

func runAnalyze(c *cli.Context) error {
	s, err := loadFixture(c.String("structure"))
	if err != nil {
		return err
	}
	if len(s.Chains) < 2 {
		return fmt.Errorf("x3dna: fixture %q has no two-chain ladder to analyze", s.ID)
	}
	a, b := s.Chains[0], s.Chains[1]
	n := len(a.Residues)
	if len(b.Residues) < n {
		n = len(b.Residues)
	}
	list := make([]x3dna.PairInput, n)
	for i := 0; i < n; i++ {
		list[i] = x3dna.PairInput{I: a.Residues[i].LegacyIdx, J: b.Residues[len(b.Residues)-1-i].LegacyIdx}
	}

	lib := template.NewLibrary(template.InMemoryLoader{})
	result, err := x3dna.Analyze(s, list, config.NewDefault(), lib, nil)
	if err != nil {
		return err
	}
	for i, p := range result.Steps {
		h := result.Helical[i]
		fmt.Printf("step %d: twist=%.2f rise=%.2f shift=%.2f slide=%.2f tilt=%.2f roll=%.2f | h_twist=%.2f h_rise=%.2f inclination=%.2f\n",
			i, p.Twist, p.Rise, p.Shift, p.Slide, p.Tilt, p.Roll, h.HTwist, h.HRise, h.Inclination)
	}
	return nil
}
