package inherit_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/polydoc/java"
	"github.com/dhamidi/polydoc/java/inherit"
	"github.com/dhamidi/polydoc/java/javadoc"
	jt "github.com/dhamidi/polydoc/java/javatest"
	"github.com/dhamidi/polydoc/java/signature"
)

func documented(m *java.Method, comment string) *java.Method {
	m.Doc = javadoc.Parse(comment)
	return m
}

func static(m *java.Method) *java.Method {
	m.Modifiers |= java.ModStatic
	return m
}

func newResolver(u *java.Universe, opts ...inherit.Option) *inherit.Resolver {
	return inherit.NewResolver(inherit.NewEngine(u), signature.NewResolver(u), opts...)
}

func method(t *testing.T, u *java.Universe, typ, name string) *java.Method {
	t.Helper()
	owner := u.FindType(nil, typ)
	require.NotNil(t, owner, typ)
	for _, m := range owner.Methods {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("%s has no method %s", typ, name)
	return nil
}

type docFixture struct {
	u       *java.Universe
	r       *inherit.Resolver
	undoc   *inherit.Undocumented
	derived *java.Type
}

func newDocFixture(t *testing.T) docFixture {
	u := jt.Build(t, jt.Unnamed(jt.Package("p",
		jt.Class("Failure"),
		jt.Class("Problem", jt.Extends("p.Failure")),
		jt.Class("DiskProblem", jt.Extends("p.Problem")),
		jt.Interface("Sized",
			jt.Doc("Things with a size. They may be empty."),
			jt.Methods(documented(jt.Method("size", "int"), "@return the number of things")),
		),
		jt.Class("Base",
			jt.Doc("Base things.\n<p>Second paragraph."),
			jt.Methods(
				documented(jt.Method("run", "void"), "Runs it. Really."),
				documented(jt.Method("bar", "void", "int"), "Bars.\n@param p0 the count"),
				documented(jt.Method("read", "int"),
					"Reads.\n@throws Failure always\n@throws Problem sometimes\n@throws Missing never"),
				documented(jt.Method("stop", "void"), "{@inheritDoc}"),
			),
		),
		jt.Class("Derived", jt.Extends("p.Base"), jt.Implements("p.Sized"),
			jt.Constructors(jt.Constructor()),
			jt.Fields(jt.Field("count", "int")),
			jt.Methods(
				jt.Method("run", "void"),
				jt.Method("bar", "void", "int"),
				jt.Method("read", "int"),
				jt.Method("size", "int"),
				documented(jt.Method("stop", "void"), "{@inheritDoc}"),
				static(jt.Method("create", "p.Derived")),
			),
		),
	)))
	undoc := inherit.NewUndocumented()
	return docFixture{
		u:       u,
		r:       newResolver(u, inherit.WithUndocumented(undoc)),
		undoc:   undoc,
		derived: u.FindType(nil, "p.Derived"),
	}
}

func TestInheritedSummaryOfType(t *testing.T) {
	t.Parallel()
	f := newDocFixture(t)

	var sink inherit.TextSink
	found, err := f.r.WriteInheritedSummary(f.derived, &sink)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Base things.", sink.String())
	assert.Equal(t, []java.Element{f.u.FindType(nil, "p.Base")}, sink.From)
}

func TestInheritedSummaryOfMethod(t *testing.T) {
	t.Parallel()
	f := newDocFixture(t)

	var sink inherit.TextSink
	found, err := f.r.WriteInheritedSummary(method(t, f.u, "p.Derived", "run"), &sink)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Runs it.", sink.String())
	assert.Equal(t, []java.Element{method(t, f.u, "p.Base", "run")}, sink.From)
}

func TestInheritedFragmentsRejectNonInstanceMethods(t *testing.T) {
	t.Parallel()
	f := newDocFixture(t)
	sink := inherit.SinkFunc(func(java.Element, []javadoc.Node) error {
		t.Fatal("nothing should be written")
		return nil
	})
	thrown := f.u.FindType(nil, "p.Failure")

	for _, e := range []java.Element{
		method(t, f.u, "p.Derived", "create"),
		f.derived.Constructors[0],
		f.derived.Fields[0],
		f.derived,
		nil,
	} {
		_, err := f.r.WriteInheritedParam(e, 0, sink)
		assert.ErrorIs(t, err, inherit.ErrNotInstanceMethod)
		_, err = f.r.WriteInheritedReturn(e, sink)
		assert.ErrorIs(t, err, inherit.ErrNotInstanceMethod)
		_, err = f.r.WriteInheritedThrows(e, thrown, sink)
		assert.ErrorIs(t, err, inherit.ErrNotInstanceMethod)
	}
	_, err := f.r.WriteInheritedSummary(method(t, f.u, "p.Derived", "create"), sink)
	assert.ErrorIs(t, err, inherit.ErrNotInstanceMethod)

	found, err := f.r.WriteInheritedSummary(f.u.FindPackage(nil, "p"), sink)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestInheritedParamByPosition(t *testing.T) {
	t.Parallel()
	f := newDocFixture(t)
	bar := method(t, f.u, "p.Derived", "bar")
	bar.Params[0].Name = "renamed"

	var sink inherit.TextSink
	found, err := f.r.WriteInheritedParam(bar, 0, &sink)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "the count", sink.String())

	_, err = f.r.WriteInheritedParam(bar, 1, &sink)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, inherit.ErrNotInstanceMethod))
}

func TestInheritedReturnFromInterface(t *testing.T) {
	t.Parallel()
	f := newDocFixture(t)

	var sink inherit.TextSink
	found, err := f.r.WriteInheritedReturn(method(t, f.u, "p.Derived", "size"), &sink)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "the number of things", sink.String())

	found, err = f.r.WriteInheritedReturn(method(t, f.u, "p.Derived", "run"), &sink)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInheritedThrowsMostSpecific(t *testing.T) {
	t.Parallel()
	f := newDocFixture(t)
	read := method(t, f.u, "p.Derived", "read")

	tests := []struct {
		thrown string
		want   string
		found  bool
	}{
		{"p.Failure", "always", true},
		{"p.Problem", "sometimes", true},
		{"p.DiskProblem", "sometimes", true},
		{"p.Base", "", false},
	}
	for _, tt := range tests {
		var sink inherit.TextSink
		found, err := f.r.WriteInheritedThrows(read, f.u.FindType(nil, tt.thrown), &sink)
		require.NoError(t, err)
		assert.Equal(t, tt.found, found, tt.thrown)
		assert.Equal(t, tt.want, sink.String(), tt.thrown)
	}
}

func TestThrowsDocSkipsUnresolved(t *testing.T) {
	t.Parallel()
	f := newDocFixture(t)
	read := method(t, f.u, "p.Base", "read")

	tag, ok := f.r.ThrowsDoc(read, f.u.FindType(nil, "p.DiskProblem"))
	require.True(t, ok)
	assert.Equal(t, "Problem", tag.Exception)
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()
	f := newDocFixture(t)

	tests := []struct {
		element java.Element
		want    string
		found   bool
	}{
		{f.u.FindType(nil, "p.Sized"), "Things with a size.", true},
		{method(t, f.u, "p.Derived", "run"), "Runs it.", true},
		{method(t, f.u, "p.Derived", "stop"), "", false},
		{method(t, f.u, "p.Derived", "create"), "", false},
		{f.derived.Fields[0], "", false},
		{f.derived, "Base things.", true},
	}
	for _, tt := range tests {
		var sink inherit.TextSink
		found, err := f.r.WriteSummary(tt.element, &sink)
		require.NoError(t, err)
		assert.Equal(t, tt.found, found, tt.element.QualifiedName())
		assert.Equal(t, tt.want, sink.String(), tt.element.QualifiedName())
	}
	assert.Equal(t, []string{"p.Derived#count", "p.Derived#create()", "p.Derived#stop()"}, f.undoc.Names())
}

func TestWriteSummaryExplicitTag(t *testing.T) {
	t.Parallel()
	u := jt.Build(t, jt.Unnamed(jt.Package("p",
		jt.Class("A", jt.Doc("Long text that is not the summary.\n@resume The short form.")),
		jt.Class("B", jt.Doc("Long text.\n@brief Short.")),
	)))

	var sink inherit.TextSink
	_, err := newResolver(u).WriteSummary(u.FindType(nil, "p.A"), &sink)
	require.NoError(t, err)
	assert.Equal(t, "The short form.", sink.String())

	sink = inherit.TextSink{}
	_, err = newResolver(u, inherit.WithSummaryTags("brief")).WriteSummary(u.FindType(nil, "p.B"), &sink)
	require.NoError(t, err)
	assert.Equal(t, "Short.", sink.String())
}

func TestInheritedBody(t *testing.T) {
	t.Parallel()
	f := newDocFixture(t)

	var sink inherit.TextSink
	found, err := f.r.WriteInheritedBody(f.derived, &sink)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, strings.HasPrefix(sink.String(), "Base things."))
	assert.True(t, strings.HasSuffix(sink.String(), "Second paragraph."))
}

func TestSinkErrorsPropagate(t *testing.T) {
	t.Parallel()
	f := newDocFixture(t)
	boom := errors.New("boom")

	found, err := f.r.WriteInheritedSummary(f.derived, inherit.SinkFunc(func(java.Element, []javadoc.Node) error {
		return boom
	}))
	assert.True(t, found)
	assert.ErrorIs(t, err, boom)
}

func TestUndocumentedConcurrent(t *testing.T) {
	t.Parallel()
	f := newDocFixture(t)
	members := java.Members(f.derived)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, m := range members {
				f.undoc.Record(m)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, len(members), f.undoc.Len())
}
