package main

import (
	"bytes"
	"fmt"

	"git.gammaspectra.live/P2Pool/wallet-rpc/utils"
	"github.com/itchyny/gojq"
	"github.com/urfave/cli/v2"
)

// printJSON writes v to the app output, through the --query expression when given
func printJSON(c *cli.Context, v any) error {
	enc := utils.NewJSONEncoder(c.App.Writer)
	enc.SetIndent("", "  ")

	expr := c.String("query")
	if expr == "" {
		return enc.Encode(v)
	}

	query, err := gojq.Parse(expr)
	if err != nil {
		return fmt.Errorf("parse query %q: %w", expr, err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return fmt.Errorf("compile query %q: %w", expr, err)
	}

	// gojq works on plain JSON values, numbers stay exact as JSONNumber
	buf, err := utils.MarshalJSON(v)
	if err != nil {
		return err
	}
	d := utils.NewJSONDecoder(bytes.NewReader(buf))
	d.UseNumber()
	var input any
	if err = d.Decode(&input); err != nil {
		return err
	}

	iter := code.RunWithContext(c.Context, input)
	for {
		result, ok := iter.Next()
		if !ok {
			return nil
		}
		if err, isErr := result.(error); isErr {
			return fmt.Errorf("query: %w", err)
		}
		if err = enc.Encode(result); err != nil {
			return err
		}
	}
}
