package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMetadata(t *testing.T) {
	page := `<html><head>
<title>Flattop Mountain Trail | AllTrails</title>
<meta property="og:title" content="  Flattop Mountain  ">
<meta property="og:description" content="A short steep hike.">
<script type="application/ld+json">{"@type":"Place"}</script>
<script type="application/ld+json">  </script>
</head><body><div data-name="Flattop"></div></body></html>`

	doc, err := ParseDocument(page)
	require.NoError(t, err)
	md := ReadMetadata(doc)

	assert.Equal(t, "Flattop Mountain", md.Title)
	assert.Equal(t, "A short steep hike.", md.Description)
	assert.Equal(t, "Flattop Mountain Trail | AllTrails", md.PageTitle)
	assert.Equal(t, "Flattop", md.DataName)
	assert.Equal(t, []string{`{"@type":"Place"}`}, md.LinkedData)
}

func TestMetadataFromHTML_SkipsEmptyContent(t *testing.T) {
	md := MetadataFromHTML(`<meta property="og:title" content=""><meta property="og:title" content="Second">`)
	assert.Equal(t, "Second", md.Title)
}

func TestMetadataFromHTML_Empty(t *testing.T) {
	assert.Equal(t, Metadata{}, MetadataFromHTML(""))
}

func TestTrimSiteSuffix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Flattop Mountain - Alaska | AllTrails", "Flattop Mountain"},
		{"Flattop Mountain | AllTrails", "Flattop Mountain"},
		{"Bird-to-Gird Trail", "Bird-to-Gird Trail"},
		{"Exit Glacier – Harding Icefield", "Exit Glacier"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, trimSiteSuffix(tt.in))
		})
	}
}

func TestVisibleText(t *testing.T) {
	doc, err := ParseDocument(`<body><p>Length: 4.5 mi</p><p>Elev. Gain: 1,350 ft</p><script>var x = "hidden";</script></body>`)
	require.NoError(t, err)
	assert.Equal(t, "Length: 4.5 mi Elev. Gain: 1,350 ft", VisibleText(doc))
}
