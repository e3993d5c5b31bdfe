package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/binder"
	"github.com/cwbudde/jhdr/internal/classfile"
	"github.com/cwbudde/jhdr/internal/diag"
	"github.com/cwbudde/jhdr/internal/symbol"
	"github.com/cwbudde/jhdr/internal/types"
	"github.com/spf13/cobra"
)

var (
	classpathArchives     []string
	bootclasspathArchives []string
	ctSymDir              string
	releaseLevel          int
	moduleVersion         string
	outputDir             string
	bindVerbose           bool
)

var bindCmd = &cobra.Command{
	Use:   "bind [class...]",
	Short: "Resolve classes against a classpath and print their bound shape",
	Long: `Seed the top-level index and environment from --classpath/--bootclasspath
and resolve each named class (fully-qualified, slash- or dot-separated) into
its bound view: hierarchy, signatures, and annotations, exactly as the binder
pipeline would see it if the class were a compiled dependency.

Source-file parsing is a separate front end and is not wired into this
build; bind demonstrates the classpath-reader and environment-composition
half of the pipeline, which is exercised identically whether a class comes
from a source unit or a classpath archive.

Examples:
  # Resolve a class against one classpath jar
  jhdr bind -c lib/guava.jar com/google/common/collect/ImmutableList

  # Resolve against a release-selected bootclasspath, writing summaries to out/
  jhdr bind --release 17 -d out java/util/List`,
	RunE: runBind,
}

func init() {
	rootCmd.AddCommand(bindCmd)

	bindCmd.Flags().StringSliceVarP(&classpathArchives, "classpath", "c", nil, "classpath archive(s) (jar/zip), comma-separated or repeated")
	bindCmd.Flags().StringSliceVar(&bootclasspathArchives, "bootclasspath", nil, "bootclasspath archive(s), comma-separated or repeated")
	bindCmd.Flags().StringVar(&ctSymDir, "ct-sym", "", "directory of release-indexed bootclasspath archives, named per the ct-sym convention")
	bindCmd.Flags().IntVar(&releaseLevel, "release", 0, "API level used to pick a bootclasspath archive from --ct-sym when --bootclasspath is not given")
	bindCmd.Flags().StringVar(&moduleVersion, "module-version", "", "version stamped into any bound module-info unit")
	bindCmd.Flags().StringVarP(&outputDir, "output", "d", "", "directory to write one bound-class summary file per resolved class")
	bindCmd.Flags().BoolVarP(&bindVerbose, "verbose", "v", false, "verbose output")
}

func runBind(_ *cobra.Command, args []string) error {
	boot, cp, closeAll, err := openClasspaths()
	if err != nil {
		return err
	}
	defer closeAll()

	bag := &diag.Bag{}
	bd := binder.NewBinder(bag, boot, cp)
	bd.SeedClasspath(boot, cp)

	if bindVerbose {
		fmt.Fprintf(os.Stderr, "Indexed classpath (module-version=%q)\n", moduleVersion)
	}

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	var failed []string
	for _, name := range args {
		sym := symbol.Class(strings.ReplaceAll(name, ".", "/"))
		b, ok := bd.Lookup(sym)
		if !ok {
			failed = append(failed, name)
			fmt.Fprintf(os.Stderr, "error: cannot resolve %s\n", name)
			continue
		}

		summary := formatBoundClass(b)
		if outputDir != "" {
			outFile := filepath.Join(outputDir, strings.ReplaceAll(string(sym), "/", "_")+".bound")
			if err := os.WriteFile(outFile, []byte(summary), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outFile, err)
			}
			if bindVerbose {
				fmt.Fprintf(os.Stderr, "%s -> %s\n", name, outFile)
			}
		} else {
			fmt.Print(summary)
		}
	}

	if bag.HasErrors() {
		fmt.Fprint(os.Stderr, bag.AsFailure().Error())
		fmt.Fprintln(os.Stderr)
	}
	if len(failed) > 0 || bag.HasErrors() {
		return fmt.Errorf("bind failed: %d unresolved class(es), %d diagnostic(s)", len(failed), bag.Len())
	}
	return nil
}

// openClasspaths builds bootclasspath/classpath readers from the given
// archive flags, resolving --release against --ct-sym when no explicit
// --bootclasspath was given.
func openClasspaths() (boot, cp *classfile.Reader, closeAll func(), err error) {
	var opened []*classfile.Archive
	closeAll = func() {
		for _, a := range opened {
			a.Close()
		}
	}

	bootPaths := bootclasspathArchives
	if len(bootPaths) == 0 && releaseLevel != 0 && ctSymDir != "" {
		name, rerr := classfile.ArchiveNameForRelease(releaseLevel)
		if rerr != nil {
			return nil, nil, closeAll, rerr
		}
		bootPaths = []string{filepath.Join(ctSymDir, name+".jar")}
	}

	boot, err = openArchiveList(bootPaths, &opened)
	if err != nil {
		return nil, nil, closeAll, err
	}
	cp, err = openArchiveList(classpathArchives, &opened)
	if err != nil {
		return nil, nil, closeAll, err
	}
	return boot, cp, closeAll, nil
}

func openArchiveList(paths []string, opened *[]*classfile.Archive) (*classfile.Reader, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	archives := make([]*classfile.Archive, 0, len(paths))
	for _, p := range paths {
		a, err := classfile.OpenArchive(p)
		if err != nil {
			return nil, err
		}
		archives = append(archives, a)
		*opened = append(*opened, a)
	}
	return classfile.NewReader(archives), nil
}

func formatBoundClass(b *binder.BoundClass) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", kindName(b.Kind), b.Symbol)
	if b.SuperType.Tag() != types.TagNone {
		fmt.Fprintf(&sb, "  extends %s\n", b.SuperType)
	}
	for _, it := range b.InterfaceTypes {
		fmt.Fprintf(&sb, "  implements %s\n", it)
	}
	for _, f := range b.Fields {
		line := fmt.Sprintf("  field %s %s", f.Type, f.Symbol.Name)
		if f.Constant != nil {
			line += fmt.Sprintf(" = %s", f.Constant)
		}
		sb.WriteString(line + "\n")
	}
	for _, m := range b.Methods {
		fmt.Fprintf(&sb, "  method %s %s(%s)\n", m.Return, m.Symbol.Name, joinTypes(m.Params))
	}
	for _, a := range b.Annos {
		fmt.Fprintf(&sb, "  @%s\n", a.Symbol)
	}
	return sb.String()
}

func joinTypes(ts []types.Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

func kindName(k ast.Kind) string {
	switch k {
	case ast.KindInterface:
		return "interface"
	case ast.KindEnum:
		return "enum"
	case ast.KindRecord:
		return "record"
	case ast.KindAnnotation:
		return "@interface"
	default:
		return "class"
	}
}
