// Command genfixtures compiles a directory of .ms fixture scripts and
// snapshots each one's disassembly next to it, for regression-pinning
// compiler output the way a human would eyeball a diff. It is internal
// tooling, not the out-of-scope embedder CLI — nothing here runs a
// MiniScript program, only compiles and disassembles one.
//
// Grounded on gothird/scripts/gen_vm_expects.go: a context.WithTimeout
// bound around the whole run, errgroup fanning work out concurrently, and
// a golden-file-next-to-its-source output convention.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/miniscript/heap"
	"github.com/jcorbin/miniscript/loader"
	"github.com/jcorbin/miniscript/object"
	"github.com/jcorbin/miniscript/opcode"
)

var (
	fixturesDir = flag.String("dir", "fixtures", "directory of .ms fixture scripts to compile")
	outDir      = flag.String("out", "", "directory to write .expected disassembly snapshots into (defaults to -dir)")
	timeout     = flag.Duration("timeout", 30*time.Second, "time budget for the whole run")
)

func main() {
	flag.Parse()
	if *outDir == "" {
		*outDir = *fixturesDir
	}

	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if err := run(ctx, *fixturesDir, *outDir); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, dir, outDir string) error {
	paths, err := findFixtures(dir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .ms fixtures found under %s", dir)
	}

	results, err := loader.CompileAll(ctx, func() *heap.Heap { return heap.New() }, paths)
	if err != nil {
		return err
	}

	eg, _ := errgroup.WithContext(ctx)
	for _, r := range results {
		r := r
		eg.Go(func() error {
			return writeSnapshot(outDir, r)
		})
	}
	return eg.Wait()
}

func findFixtures(dir string) ([]string, error) {
	var paths []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".ms") {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

func writeSnapshot(outDir string, r loader.Result) error {
	name := strings.TrimSuffix(filepath.Base(r.Path), ".ms") + ".expected"
	f, err := os.Create(filepath.Join(outDir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "# %s\n", r.Path)
	for _, d := range r.Diagnostics {
		fmt.Fprintf(f, "# error: %v\n", d)
	}

	dumpFunction(f, object.BodyFunctionName, r.Script, r.Script.Body)
	for i := 0; i < r.Script.Functions.Len(); i++ {
		fn := r.Script.Functions.At(i)
		dumpFunction(f, fn.Name, r.Script, fn)
	}
	return nil
}

// dumpFunction disassembles fn's bytecode into w, one instruction per
// line, resolving CONSTANT/GET_ATTRIB/SET_ATTRIB operands against script's
// literal/name pools so a reviewer doesn't have to cross-reference indices
// by hand.
func dumpFunction(w io.Writer, name string, script *object.Script, fn *object.Function) {
	fmt.Fprintf(w, "## %s (arity %d)\n", name, fn.Arity)
	if fn.IsNative {
		fmt.Fprintf(w, "  <native>\n")
		return
	}

	code := fn.Code.Items()
	addrWidth := len(strconv.Itoa(len(code))) + 1
	for addr := 0; addr < len(code); {
		c := opcode.Code(code[addr])
		width := opcode.OperandWidth(c)

		fmt.Fprintf(w, "  @% *d %s", addrWidth, addr, c.Name())
		switch width {
		case 1:
			operand := int(code[addr+1])
			fmt.Fprintf(w, " %d%s", operand, operandComment(script, c, operand))
		case 2:
			operand := int(code[addr+1])<<8 | int(code[addr+2])
			fmt.Fprintf(w, " %d%s", operand, operandComment(script, c, operand))
		}
		fmt.Fprintln(w)

		addr += 1 + width
	}
}

func operandComment(script *object.Script, c opcode.Code, operand int) string {
	switch c {
	case opcode.CONSTANT:
		if operand < script.Literals.Len() {
			return "  ; " + formatValue(script.Literals.At(operand))
		}
	case opcode.LOAD_GLOBAL, opcode.STORE_GLOBAL:
		if operand < script.GlobalNames.Len() {
			return "  ; " + script.GlobalNames.Get(operand).String()
		}
	case opcode.GET_ATTRIB, opcode.SET_ATTRIB:
		if operand < script.Names.Len() {
			return "  ; ." + script.Names.Get(operand).String()
		}
	}
	return ""
}

func formatValue(v object.Value) string {
	switch v.Tag() {
	case object.TagNull:
		return "null"
	case object.TagBool:
		b, _ := v.AsBool()
		return strconv.FormatBool(b)
	case object.TagNumber:
		n, _ := v.AsNumber()
		return strconv.FormatFloat(n, 'g', -1, 64)
	case object.TagObject:
		if obj, ok := v.AsObj(); ok {
			if s, ok := obj.(*object.String); ok {
				return strconv.Quote(s.String())
			}
		}
		return v.TypeName()
	default:
		return "?"
	}
}
