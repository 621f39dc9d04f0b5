package html_test

import (
	"strings"
	"testing"

	"bennypowers.dev/sls/internal/parser/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleRegions(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		wantLangs []string
	}{
		{
			name:      "plain style tag",
			source:    "<html><head><style>\n.a { color: red; }\n</style></head></html>",
			wantLangs: []string{""},
		},
		{
			name:      "vue single file component",
			source:    "<template>\n  <div class=\"a\"></div>\n</template>\n<style lang=\"scss\" scoped>\n$c: red;\n.a { color: $c; }\n</style>\n",
			wantLangs: []string{"scss"},
		},
		{
			name:      "multiple styles",
			source:    "<style lang='SCSS'>$a: 1;</style>\n<p>hi</p>\n<style lang=\"less\">@a: 1;</style>",
			wantLangs: []string{"scss", "less"},
		},
		{
			name:      "no styles",
			source:    "<div>hello</div>",
			wantLangs: nil,
		},
		{
			name:      "empty style element",
			source:    "<style></style>",
			wantLangs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := html.AcquireParser()
			defer html.ReleaseParser(parser)

			regions := parser.StyleRegions(tt.source)

			var langs []string
			for _, r := range regions {
				langs = append(langs, r.Lang)
				assert.Equal(t, r.Content, tt.source[r.Start:r.End()], "region offsets map back into the document")
			}
			assert.Equal(t, tt.wantLangs, langs)
		})
	}
}

func TestStyleRegionPosition(t *testing.T) {
	source := "<template><p></p></template>\n<style lang=\"scss\">\n$gap: 4px;\n</style>\n"

	parser := html.AcquireParser()
	defer html.ReleaseParser(parser)

	regions := parser.StyleRegions(source)
	require.Len(t, regions, 1)

	r := regions[0]
	assert.Equal(t, strings.Index(source, "\n$gap"), r.Start)
	assert.Equal(t, uint(1), r.StartLine)
	assert.Equal(t, uint(len(`<style lang="scss">`)), r.StartCol)
	assert.True(t, r.IsSCSS())

	found, ok := html.RegionAt(regions, strings.Index(source, "$gap"))
	require.True(t, ok)
	assert.Equal(t, r, found)

	_, ok = html.RegionAt(regions, 0)
	assert.False(t, ok)
}

func TestRegionIsSCSS(t *testing.T) {
	for lang, want := range map[string]bool{"": true, "css": true, "scss": true, "less": false, "stylus": false} {
		assert.Equal(t, want, html.Region{Lang: lang}.IsSCSS(), lang)
	}
}
