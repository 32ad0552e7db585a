package discovery

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/doc"
	"go/format"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/tools/go/packages"

	"github.com/agentflare-ai/go-dock/internal/element"
)

const loadMode = packages.NeedName | packages.NeedCompiledGoFiles | packages.NeedFiles |
	packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo |
	packages.NeedTypesSizes | packages.NeedModule | packages.NeedImports

// GoSource discovers the Go packages below Root. Each package becomes a
// Package, each source file a Module, each type a Class and each function or
// method a Function. Root may be a directory, a package pattern or a .go file.
type GoSource struct {
	Root       string
	Unexported bool
	Logger     *log.Logger
}

// Discover loads the package tree. Packages that fail to load are logged and
// skipped; their descendants still get an (empty) ancestor package.
func (s *GoSource) Discover(ctx context.Context) ([]element.Record, error) {
	root := s.Root
	if strings.HasSuffix(root, ".go") {
		root = filepath.Dir(root)
	}
	pkgs, err := loadPackageTree(ctx, root)
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go packages matched %q", root)
	}
	c := &goCollector{
		source:    s,
		baseDir:   resolveBaseDir(root),
		typeIndex: make(map[string]string),
		emitted:   make(map[string]bool),
	}
	return c.collect(pkgs), nil
}

func (s *GoSource) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

type goPackage struct {
	pkg       *packages.Package
	qualified string
	modules   []goModule
}

type goModule struct {
	file      *ast.File
	qualified string
}

type goCollector struct {
	source  *GoSource
	baseDir string
	records []element.Record
	// typeIndex maps "<import path>.<type name>" to the qualified name of
	// the emitted Class.
	typeIndex map[string]string
	emitted   map[string]bool
}

func (c *goCollector) collect(pkgs []*packages.Package) []element.Record {
	var loaded []*goPackage
	// Every package path and its ancestors, including packages that fail to
	// load, so a file module never takes a name an empty package needs.
	packageNames := make(map[string]bool, len(pkgs))
	for _, pkg := range pkgs {
		qualified := c.packageName(pkg)
		for i := range qualified {
			if qualified[i] == '.' {
				packageNames[qualified[:i]] = true
			}
		}
		packageNames[qualified] = true
		if len(pkg.Errors) > 0 {
			c.source.logger().Warn("failed to load package", "package", pkg.PkgPath, "error", pkg.Errors[0])
			continue
		}
		loaded = append(loaded, &goPackage{pkg: pkg, qualified: qualified})
	}
	sort.SliceStable(loaded, func(i, j int) bool {
		di, dj := strings.Count(loaded[i].qualified, "."), strings.Count(loaded[j].qualified, ".")
		if di != dj {
			return di < dj
		}
		return loaded[i].qualified < loaded[j].qualified
	})

	// Namespaces first, so functions can annotate with any package's types.
	for _, gp := range loaded {
		c.ensureAncestors(gp.qualified)
		c.emit(element.Record{
			Shape:       element.ShapeModule,
			Name:        gp.qualified,
			Initializer: true,
			Doc:         packageDoc(gp.pkg),
		})
		for _, file := range gp.pkg.Syntax {
			stem := segment(strings.TrimSuffix(filepath.Base(gp.pkg.Fset.Position(file.Package).Filename), ".go"))
			qualified := gp.qualified + "." + stem
			if packageNames[qualified] {
				qualified += "_go"
			}
			gp.modules = append(gp.modules, goModule{file: file, qualified: qualified})
			c.emit(element.Record{Shape: element.ShapeModule, Name: qualified})
		}
		for _, m := range gp.modules {
			c.collectTypes(gp, m)
		}
	}
	for _, gp := range loaded {
		for _, m := range gp.modules {
			c.collectFuncs(gp, m)
		}
	}
	return c.records
}

func (c *goCollector) emit(rec element.Record) {
	if rec.Shape == element.ShapeModule {
		c.emitted[rec.Name] = true
	}
	c.records = append(c.records, rec)
}

// ensureAncestors emits empty packages for directories between the root and
// a package that hold no Go files themselves.
func (c *goCollector) ensureAncestors(qualified string) {
	parts := strings.Split(qualified, ".")
	for i := 1; i < len(parts); i++ {
		name := strings.Join(parts[:i], ".")
		if c.emitted[name] {
			continue
		}
		c.emit(element.Record{Shape: element.ShapeModule, Name: name, Initializer: true})
	}
}

// packageName derives a package's qualified name from its directory relative
// to the base directory, rooted at the base directory's own name. Packages
// outside the base directory fall back to their import path.
func (c *goCollector) packageName(pkg *packages.Package) string {
	pkgDir := packageDir(pkg)
	if pkgDir != "" {
		if abs, err := filepath.Abs(pkgDir); err == nil {
			pkgDir = abs
		}
	}
	if c.baseDir != "" && pkgDir != "" {
		if rel, err := filepath.Rel(c.baseDir, pkgDir); err == nil && !strings.HasPrefix(rel, "..") {
			return joinSegments(filepath.Base(c.baseDir), rel)
		}
	}
	return joinSegments("", importPath(pkg, pkgDir))
}

func joinSegments(rootName, rel string) string {
	var parts []string
	if rootName != "" {
		parts = append(parts, segment(rootName))
	}
	for _, p := range strings.Split(filepath.ToSlash(rel), "/") {
		if p == "" || p == "." {
			continue
		}
		parts = append(parts, segment(p))
	}
	if len(parts) == 0 {
		return "_"
	}
	return strings.Join(parts, ".")
}

func (c *goCollector) collectTypes(gp *goPackage, m goModule) {
	for _, decl := range m.file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			if !c.include(ts.Name.Name) {
				continue
			}
			docText := commentText(ts.Doc)
			if docText == "" && len(gen.Specs) == 1 {
				docText = commentText(gen.Doc)
			}
			body, tag := splitDoc(docText)
			tag.Fields = c.structFields(ts)
			c.typeIndex[gp.pkg.PkgPath+"."+ts.Name.Name] = m.qualified + "." + ts.Name.Name
			c.emit(element.Record{
				Shape:  element.ShapeType,
				Name:   gp.qualified + "." + ts.Name.Name,
				Scope:  ts.Name.Name,
				Module: m.qualified,
				Doc:    body,
				Tag:    tag,
			})
		}
	}
}

func (c *goCollector) structFields(ts *ast.TypeSpec) element.Pairs {
	st, ok := ts.Type.(*ast.StructType)
	if !ok || st.Fields == nil {
		return nil
	}
	var fields element.Pairs
	for _, field := range st.Fields.List {
		desc := commentText(field.Doc)
		if desc == "" {
			desc = commentText(field.Comment)
		}
		desc = strings.Join(strings.Fields(desc), " ")
		if len(field.Names) == 0 {
			name := types.ExprString(field.Type)
			if c.include(embeddedName(field.Type)) {
				fields = append(fields, element.Pair{Key: name, Value: desc})
			}
			continue
		}
		for _, name := range field.Names {
			if c.include(name.Name) {
				fields = append(fields, element.Pair{Key: name.Name, Value: desc})
			}
		}
	}
	return fields
}

func (c *goCollector) collectFuncs(gp *goPackage, m goModule) {
	info := gp.pkg.TypesInfo
	for _, decl := range m.file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || !c.include(fd.Name.Name) || fd.Name.Name == "init" || fd.Name.Name == "_" {
			continue
		}
		obj, _ := info.Defs[fd.Name].(*types.Func)
		if obj == nil {
			continue
		}
		sig := obj.Type().(*types.Signature)
		rec := element.Record{
			Shape:      element.ShapeCallable,
			Name:       gp.qualified + "." + fd.Name.Name,
			Scope:      fd.Name.Name,
			Module:     m.qualified,
			SourceLang: "go",
			Source:     formatNode(gp.pkg.Fset, withoutDoc(fd)),
		}
		if recv := sig.Recv(); recv != nil {
			named := namedOf(recv.Type())
			if named == nil {
				continue
			}
			owner, ok := c.typeIndex[gp.pkg.PkgPath+"."+named.Obj().Name()]
			if !ok {
				// Receiver type was filtered out.
				continue
			}
			module, typeName := splitQualified(owner)
			rec.Name = gp.qualified + "." + typeName + "." + fd.Name.Name
			rec.Scope = typeName + "." + fd.Name.Name
			rec.Module = module
		}
		rec.Annotations = c.annotations(sig, gp.pkg.Types)
		body, tag := splitDoc(commentText(fd.Doc))
		rec.Doc = body
		rec.Tag = tag
		c.emit(rec)
	}
}

func (c *goCollector) annotations(sig *types.Signature, from *types.Package) element.Pairs {
	var ann element.Pairs
	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		p := params.At(i)
		name := p.Name()
		if name == "" || name == "_" {
			name = fmt.Sprintf("_%d", i)
		}
		typ := p.Type()
		text := ""
		if sig.Variadic() && i == params.Len()-1 {
			if slice, ok := typ.(*types.Slice); ok {
				text = "..." + c.typeText(slice.Elem(), from)
			}
		}
		if text == "" {
			text = c.typeText(typ, from)
		}
		ann = append(ann, element.Pair{Key: name, Value: text})
	}
	results := sig.Results()
	switch results.Len() {
	case 0:
	case 1:
		ann = append(ann, element.Pair{Key: element.ReturnKey, Value: c.typeText(results.At(0).Type(), from)})
	default:
		parts := make([]string, results.Len())
		for i := 0; i < results.Len(); i++ {
			parts[i] = c.typeText(results.At(i).Type(), from)
		}
		ann = append(ann, element.Pair{Key: element.ReturnKey, Value: "(" + strings.Join(parts, ", ") + ")"})
	}
	return ann
}

// typeText names a type so that discovered named types, and pointers to
// them, resolve to their Class in the registry.
func (c *goCollector) typeText(t types.Type, from *types.Package) string {
	if named := namedOf(t); named != nil && named.TypeArgs().Len() == 0 && named.Obj().Pkg() != nil {
		if q, ok := c.typeIndex[named.Obj().Pkg().Path()+"."+named.Obj().Name()]; ok {
			return q
		}
	}
	return types.TypeString(t, func(p *types.Package) string {
		if p == from {
			return ""
		}
		return p.Name()
	})
}

func (c *goCollector) include(name string) bool {
	return c.source.Unexported || token.IsExported(name)
}

func namedOf(t types.Type) *types.Named {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	named, _ := t.(*types.Named)
	return named
}

func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	case *ast.Ident:
		return e.Name
	}
	return ""
}

func splitQualified(q string) (string, string) {
	idx := strings.LastIndexByte(q, '.')
	return q[:idx], q[idx+1:]
}

// splitDoc separates a doc comment into its body and the sections opened by
// "# Heading" lines. The first sentence becomes the short summary.
func splitDoc(text string) (string, *element.DocTag) {
	tag := &element.DocTag{}
	if strings.TrimSpace(text) == "" {
		return "", tag
	}
	var body strings.Builder
	var title string
	var section strings.Builder
	flush := func() {
		if title != "" {
			tag.Sections = append(tag.Sections, element.Pair{Key: title, Value: strings.TrimSpace(section.String())})
		}
		section.Reset()
	}
	prevBlank := true
	for _, line := range strings.Split(text, "\n") {
		if prevBlank && strings.HasPrefix(line, "# ") {
			flush()
			title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			prevBlank = false
			continue
		}
		prevBlank = strings.TrimSpace(line) == ""
		if title == "" {
			body.WriteString(line)
			body.WriteByte('\n')
		} else {
			section.WriteString(line)
			section.WriteByte('\n')
		}
	}
	flush()
	bodyText := strings.TrimSpace(body.String())
	tag.Short = new(doc.Package).Synopsis(bodyText)
	return bodyText, tag
}

func packageDoc(pkg *packages.Package) string {
	for _, file := range pkg.Syntax {
		if text := commentText(file.Doc); text != "" {
			return text
		}
	}
	return ""
}

func commentText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return strings.TrimSpace(cg.Text())
}

// withoutDoc keeps the doc comment out of the printed source; it is
// rendered separately.
func withoutDoc(fd *ast.FuncDecl) *ast.FuncDecl {
	cp := *fd
	cp.Doc = nil
	return &cp
}

func formatNode(fset *token.FileSet, node ast.Node) string {
	var buf bytes.Buffer
	if err := format.Node(&buf, fset, node); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}

// segment makes a path element usable as a qualified name segment.
func segment(s string) string {
	s = strings.NewReplacer(".", "_", "-", "_", " ", "_").Replace(s)
	if s == "" {
		return "_"
	}
	return s
}

// loadPackageTree loads root and everything below it, one entry per
// import path, sorted by path. Packages with errors are returned as well;
// collect decides what to do with them.
func loadPackageTree(ctx context.Context, root string) ([]*packages.Package, error) {
	cfg := &packages.Config{Context: ctx, Mode: loadMode}
	pkgs, err := packages.Load(cfg, buildPatterns(root)...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", root, err)
	}
	seen := make(map[string]bool, len(pkgs))
	result := pkgs[:0]
	for _, pkg := range pkgs {
		key := pkg.PkgPath
		if key == "" {
			key = packageDir(pkg)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, pkg)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].PkgPath < result[j].PkgPath
	})
	return result, nil
}

func buildPatterns(root string) []string {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	root = filepath.ToSlash(root)
	if !strings.HasPrefix(root, ".") && !strings.HasPrefix(root, "/") && !strings.Contains(root, "...") {
		if _, err := os.Stat(root); err == nil {
			root = "./" + root
		}
	}
	patterns := []string{root}
	if !strings.Contains(root, "...") {
		recursive := root
		if recursive == "." {
			recursive = "./..."
		} else if strings.HasSuffix(recursive, "/") {
			recursive = recursive + "..."
		} else {
			recursive = recursive + "/..."
		}
		patterns = append(patterns, recursive)
	}
	return patterns
}

// resolveBaseDir returns the absolute directory package names are relative
// to, or "" when root is a pattern rather than a directory.
func resolveBaseDir(root string) string {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	root = strings.TrimSuffix(filepath.ToSlash(root), "/...")
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return ""
	}
	base, err := filepath.Abs(root)
	if err != nil {
		return ""
	}
	return base
}

func importPath(pkg *packages.Package, pkgDir string) string {
	switch {
	case pkg.PkgPath != "":
		return pkg.PkgPath
	case pkgDir != "":
		return filepath.Base(pkgDir)
	default:
		return pkg.Name
	}
}

func packageDir(pkg *packages.Package) string {
	for _, files := range [][]string{pkg.GoFiles, pkg.CompiledGoFiles} {
		if len(files) > 0 {
			return filepath.Dir(files[0])
		}
	}
	return ""
}
