package post

import "testing"

func TestRenderBodyWrapsParagraphs(t *testing.T) {
	got := RenderBody([]string{"First paragraph.", "", "Second paragraph."})
	want := "<p>First paragraph.</p>\n<p>Second paragraph.</p>"
	if got != want {
		t.Fatalf("body = %q, want %q", got, want)
	}
}

func TestRenderBodyEscapesHTML(t *testing.T) {
	got := RenderBody([]string{`Scores were 3 < 5 & "rising"`})
	want := "<p>Scores were 3 &lt; 5 &amp; &#34;rising&#34;</p>"
	if got != want {
		t.Fatalf("body = %q", got)
	}
}

func TestRenderBodyEmpty(t *testing.T) {
	if got := RenderBody(nil); got != "" {
		t.Fatalf("body = %q, want empty", got)
	}
	if got := RenderBody([]string{"  ", ""}); got != "" {
		t.Fatalf("body = %q, want empty", got)
	}
}
