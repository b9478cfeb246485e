// gen_vm_expects generates expectVM* wrappers, usable with
// vmTestCase.apply, for every vmTestCase.expect* method in a test file.
package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"time"

	"golang.org/x/sync/errgroup"
)

var expectMethod = regexp.MustCompile(`^func \(vmt vmTestCase\) expect(.+?)\((.+?)\) vmTestCase`)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 2 {
		log.Fatalf("usage: gen_vm_expects.go <vm_test.go> <vm_expects_test.go>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := generate(ctx, args[0], args[1]); err != nil {
		log.Fatalln(err)
	}
}

// generate pipes generated source through gofmt into the output file.
func generate(ctx context.Context, inName, outName string) error {
	in, err := os.Open(inName)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outName)
	if err != nil {
		return err
	}
	defer out.Close()

	gofmt := exec.CommandContext(ctx, "gofmt")
	gofmt.Stdout = out
	gofmt.Stderr = os.Stderr
	fmtPipe, err := gofmt.StdinPipe()
	if err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := gofmt.Run(); err != nil {
			return fmt.Errorf("gofmt failed: %w", err)
		}
		return nil
	})
	eg.Go(func() (rerr error) {
		defer func() {
			if cerr := fmtPipe.Close(); rerr == nil {
				rerr = cerr
			}
		}()
		return writeExpects(ctx, inName, in, fmtPipe)
	})
	if err := eg.Wait(); err != nil {
		return err
	}
	return out.Close()
}

func writeExpects(ctx context.Context, inName string, in io.Reader, out io.Writer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "package main\n\n")
	fmt.Fprintf(&buf, "// @generated from %v\n\n", inName)
	fmt.Fprintf(&buf, "//go:generate go run scripts/gen_vm_expects.go -- vm_test.go vm_expects_test.go\n\n")

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if match := expectMethod.FindSubmatch(sc.Bytes()); len(match) > 0 {
			what, params := match[1], match[2]

			var args [][]byte
			for _, param := range bytes.Split(params, []byte(",")) {
				fields := bytes.Fields(param)
				arg := fields[0]
				if len(fields) > 1 && bytes.HasPrefix(fields[1], []byte("...")) {
					arg = append(arg[:len(arg):len(arg)], "..."...)
				}
				args = append(args, arg)
			}

			fmt.Fprintf(&buf, "func expectVM%s(%s) func(vmTestCase) vmTestCase {\n", what, params)
			fmt.Fprintf(&buf, "\treturn func(vmt vmTestCase) vmTestCase {\n")
			fmt.Fprintf(&buf, "\t\treturn vmt.expect%s(%s)\n", what, bytes.Join(args, []byte(", ")))
			fmt.Fprintf(&buf, "\t}\n}\n\n")
		}

		if buf.Len() > 0 {
			if _, err := buf.WriteTo(out); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return sc.Err()
}
