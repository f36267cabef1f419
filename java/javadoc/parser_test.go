package javadoc

import (
	"strings"
	"testing"
)

func TestParseSimpleText(t *testing.T) {
	doc := Parse("/** Simple text. */")

	if len(doc.Body) != 1 {
		t.Fatalf("expected 1 body node, got %d", len(doc.Body))
	}

	text, ok := doc.Body[0].(Text)
	if !ok {
		t.Fatalf("expected Text node, got %T", doc.Body[0])
	}

	if text.Content != "Simple text." {
		t.Errorf("expected 'Simple text.', got %q", text.Content)
	}
}

func TestParseWithoutDelimiters(t *testing.T) {
	doc := Parse("Returns the size.\n@return the size")

	if got := PlainText(doc.Body); got != "Returns the size." {
		t.Errorf("body = %q", got)
	}
	if len(doc.BlockTags) != 1 {
		t.Fatalf("expected 1 block tag, got %d", len(doc.BlockTags))
	}
}

func TestParseCodeTag(t *testing.T) {
	doc := Parse("/** Use {@code Map<String, List<Integer>>} for this. */")

	if len(doc.Body) != 3 {
		t.Fatalf("expected 3 body nodes, got %d: %+v", len(doc.Body), doc.Body)
	}

	code, ok := doc.Body[1].(Code)
	if !ok {
		t.Fatalf("expected Code node, got %T", doc.Body[1])
	}

	expected := "Map<String, List<Integer>>"
	if code.Content != expected {
		t.Errorf("expected %q, got %q", expected, code.Content)
	}
}

func TestParseCodeTagWithBraces(t *testing.T) {
	doc := Parse("/** Use {@code class Foo { int x; }} for this. */")

	code, ok := doc.Body[1].(Code)
	if !ok {
		t.Fatalf("expected Code node, got %T", doc.Body[1])
	}

	expected := "class Foo { int x; }"
	if code.Content != expected {
		t.Errorf("expected %q, got %q", expected, code.Content)
	}
}

func TestParseLinkTag(t *testing.T) {
	doc := Parse("/** See {@link java.util.List} for more. */")

	if len(doc.Body) != 3 {
		t.Fatalf("expected 3 body nodes, got %d", len(doc.Body))
	}

	link, ok := doc.Body[1].(Link)
	if !ok {
		t.Fatalf("expected Link node, got %T", doc.Body[1])
	}

	if link.Reference != "java.util.List" {
		t.Errorf("expected 'java.util.List', got %q", link.Reference)
	}
	if link.Plain {
		t.Error("expected Plain to be false")
	}
}

func TestParseLinkTagWithLabel(t *testing.T) {
	doc := Parse("/** See {@linkplain java.util.List the List interface}. */")

	link, ok := doc.Body[1].(Link)
	if !ok {
		t.Fatalf("expected Link node, got %T", doc.Body[1])
	}
	if !link.Plain {
		t.Error("expected Plain to be true")
	}
	if got := PlainText(link.Label); got != "the List interface" {
		t.Errorf("expected 'the List interface', got %q", got)
	}
}

func TestParseLinkWithSpacedParameters(t *testing.T) {
	doc := Parse("/** Calls {@link #put(Object, Object) put}. */")

	link, ok := doc.Body[1].(Link)
	if !ok {
		t.Fatalf("expected Link node, got %T", doc.Body[1])
	}
	if link.Reference != "#put(Object,Object)" {
		t.Errorf("reference = %q", link.Reference)
	}
	if got := PlainText(link.Label); got != "put" {
		t.Errorf("label = %q", got)
	}
}

func TestParseParamTag(t *testing.T) {
	doc := Parse(`/**
	 * Description.
	 * @param name the name of the thing
	 */`)

	if len(doc.BlockTags) != 1 {
		t.Fatalf("expected 1 block tag, got %d", len(doc.BlockTags))
	}

	param, ok := doc.BlockTags[0].(Param)
	if !ok {
		t.Fatalf("expected Param, got %T", doc.BlockTags[0])
	}

	if param.Name != "name" {
		t.Errorf("expected param name 'name', got %q", param.Name)
	}
	if param.IsTypeParam {
		t.Error("expected IsTypeParam to be false")
	}
	if got := PlainText(param.Description); got != "the name of the thing" {
		t.Errorf("description = %q", got)
	}
}

func TestParseTypeParamTag(t *testing.T) {
	doc := Parse(`/**
	 * @param <T> the element type
	 */`)

	param, ok := doc.BlockTags[0].(Param)
	if !ok {
		t.Fatalf("expected Param, got %T", doc.BlockTags[0])
	}
	if param.Name != "T" || !param.IsTypeParam {
		t.Errorf("got %+v", param)
	}
}

func TestParseThrowsTag(t *testing.T) {
	doc := Parse(`/**
	 * @exception IllegalArgumentException if the argument is null
	 */`)

	throws, ok := doc.BlockTags[0].(Throws)
	if !ok {
		t.Fatalf("expected Throws, got %T", doc.BlockTags[0])
	}
	if throws.Exception != "IllegalArgumentException" {
		t.Errorf("expected 'IllegalArgumentException', got %q", throws.Exception)
	}
}

func TestParseHTMLEntity(t *testing.T) {
	doc := Parse("/** A &lt; B &amp;&amp; C &gt; D */")

	formatted := Format(doc)
	expected := "A < B && C > D"
	if formatted != expected {
		t.Errorf("expected %q, got %q", expected, formatted)
	}
}

func TestParseHTMLTags(t *testing.T) {
	doc := Parse("/** <p>First paragraph.</p><p>Second.</p> */")

	var startCount, endCount int
	for _, node := range doc.Body {
		switch node.(type) {
		case StartElement:
			startCount++
		case EndElement:
			endCount++
		}
	}

	if startCount != 2 {
		t.Errorf("expected 2 StartElements, got %d", startCount)
	}
	if endCount != 2 {
		t.Errorf("expected 2 EndElements, got %d", endCount)
	}
}

func TestParseMultipleBlockTags(t *testing.T) {
	doc := Parse(`/**
	 * Description here.
	 *
	 * @param x the x coordinate
	 * @param y the y coordinate
	 * @return the distance
	 * @throws IllegalArgumentException if negative
	 * @undocumented
	 */`)

	want := []string{"param", "param", "return", "throws", "undocumented"}
	if len(doc.BlockTags) != len(want) {
		t.Fatalf("expected %d block tags, got %d", len(want), len(doc.BlockTags))
	}
	for i, name := range want {
		if got := BlockTagName(doc.BlockTags[i]); got != name {
			t.Errorf("tag %d = %q, want %q", i, got, name)
		}
	}
	if !doc.HasBlockTag("undocumented") {
		t.Error("expected @undocumented to be found")
	}
}

func TestParseNestedBraces(t *testing.T) {
	input := `/**
	 * Example:
	 * {@code
	 * class OneShotPublisher implements Publisher {
	 *   public void subscribe(Subscriber subscriber) {
	 *     if (subscribed)
	 *       subscriber.onError(new IllegalStateException());
	 *   }
	 * }
	 * }
	 */`

	doc := Parse(input)

	var code *Code
	for _, node := range doc.Body {
		if c, ok := node.(Code); ok {
			code = &c
			break
		}
	}
	if code == nil {
		t.Fatal("expected to find Code node")
	}
	if !strings.Contains(code.Content, "class OneShotPublisher") {
		t.Errorf("code content missing class declaration: %s", code.Content)
	}
	if !strings.Contains(code.Content, "subscriber.onError") {
		t.Errorf("code content missing method body: %s", code.Content)
	}
}

func TestParseSeeTag(t *testing.T) {
	doc := Parse(`/**
	 * @see java.util.List#add(Object) adding
	 * @see "The Java Language Specification"
	 */`)

	if len(doc.BlockTags) != 2 {
		t.Fatalf("expected 2 block tags, got %d", len(doc.BlockTags))
	}
	see := doc.BlockTags[0].(See)
	if see.Reference != "java.util.List#add(Object)" {
		t.Errorf("reference = %q", see.Reference)
	}
	quoted := doc.BlockTags[1].(See)
	if quoted.Reference != "" {
		t.Errorf("quoted @see should carry no reference, got %q", quoted.Reference)
	}
}

func TestFormat(t *testing.T) {
	input := `/**
	 * This is a description with {@code some code} in it.
	 * And a {@link java.util.List} reference.
	 *
	 * @param name the name to use
	 * @return the result
	 */`

	formatted := Format(Parse(input))

	for _, want := range []string{"some code", "a List reference", "@param name the name to use", "@return the result"} {
		if !strings.Contains(formatted, want) {
			t.Errorf("expected %q in output: %s", want, formatted)
		}
	}
}
