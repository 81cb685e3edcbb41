package domain

import (
	"strings"
	"testing"
)

func TestImportOutline(t *testing.T) {
	t.Run("two level sample", func(t *testing.T) {
		opml := `<opml version="2.0">
  <head><title>sample</title></head>
  <body>
    <outline text="A">
      <outline text="B"/>
    </outline>
  </body>
</opml>`

		res, err := ImportOutlineString(opml, OutlineOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Truncated {
			t.Error("expected no truncation")
		}
		if len(res.Nodes) != 1 || res.Nodes[0].Text != "A" {
			t.Fatalf("expected single root A, got %+v", res.Nodes)
		}
		kids := res.Nodes[0].Children
		if len(kids) != 1 || kids[0].Text != "B" || len(kids[0].Children) != 0 {
			t.Errorf("expected A to contain leaf B, got %+v", kids)
		}
	})

	t.Run("missing body treats top-level children as roots", func(t *testing.T) {
		res, err := ImportOutlineString(`<nodes><node text="X"/><node text="Y"/></nodes>`, OutlineOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Nodes) != 2 || res.Nodes[0].Text != "X" || res.Nodes[1].Text != "Y" {
			t.Errorf("expected roots X, Y, got %+v", res.Nodes)
		}
	})

	t.Run("label fallback order", func(t *testing.T) {
		opml := `<body>
  <outline text="from text" title="ignored"/>
  <outline title="from title"/>
  <item>  inline content  </item>
  <node/>
</body>`

		res, err := ImportOutlineString(opml, OutlineOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"from text", "from title", "inline content", NoTextLabel}
		if len(res.Nodes) != len(want) {
			t.Fatalf("expected %d nodes, got %+v", len(want), res.Nodes)
		}
		for i, w := range want {
			if res.Nodes[i].Text != w {
				t.Errorf("node %d: expected %q, got %q", i, w, res.Nodes[i].Text)
			}
		}
	})

	t.Run("unknown child tags are skipped", func(t *testing.T) {
		res, err := ImportOutlineString(`<body><outline text="A"/><script>bad</script></body>`, OutlineOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Nodes) != 1 || res.Nodes[0].Text != "A" {
			t.Errorf("expected only A, got %+v", res.Nodes)
		}
	})

	t.Run("node budget truncates partial tree", func(t *testing.T) {
		var sb strings.Builder
		sb.WriteString("<body>")
		for i := 0; i < 10; i++ {
			sb.WriteString(`<outline text="n"/>`)
		}
		sb.WriteString("</body>")

		res, err := ImportOutlineString(sb.String(), OutlineOptions{MaxNodes: 4})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Truncated {
			t.Error("expected truncation flag")
		}
		if len(res.Nodes) != 4 {
			t.Errorf("expected 4 nodes, got %d", len(res.Nodes))
		}
	})

	t.Run("depth bound truncates", func(t *testing.T) {
		opml := `<body><outline text="1"><outline text="2"><outline text="3"/></outline></outline></body>`

		res, err := ImportOutlineString(opml, OutlineOptions{MaxDepth: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Truncated {
			t.Error("expected truncation flag")
		}
		if len(res.Nodes) != 1 || len(res.Nodes[0].Children) != 1 {
			t.Fatalf("expected chain 1 -> 2, got %+v", res.Nodes)
		}
		if len(res.Nodes[0].Children[0].Children) != 0 {
			t.Error("expected depth-3 node to be cut")
		}
	})

	t.Run("malformed input returns error", func(t *testing.T) {
		if _, err := ImportOutlineString("<body><outline", OutlineOptions{}); err == nil {
			t.Error("expected parse error")
		}
	})
}
