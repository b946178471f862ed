package cli

import (
	"text/template"

	"github.com/iudanet/storekeeper/internal/models"
)

var funcs = template.FuncMap{
	"price": models.FormatPrice,
	"money": func(v float64) string { return "$" + models.FormatPrice(v) },
	"inc":   func(i int) int { return i + 1 },
}

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Parse(text))
}

const usageText = `
Storekeeper Client

Usage:
  storekeeper [OPTIONS] COMMAND [ARGS]

Options:
  -version             Show version information
  -server URL          Server URL (env STOREKEEPER_SERVER_URL)
  -db PATH             Path to local database (env STOREKEEPER_CLIENT_DB)
  -offline             Work from the local cache only (env STOREKEEPER_OFFLINE)

Commands:
  login [TOKEN]                 Store an API token (prompted if omitted)
  logout                        Delete the stored token
  status                        Connectivity, token and local cache status

  products list [-q TEXT] [-category NAME] [-page N]
  products add -name NAME -price PRICE [-category NAME] [-image URL]
  products edit ID [-name NAME] [-price PRICE] [-category NAME] [-image URL]
  products delete ID

  categories list [-q TEXT] [-page N]
  categories add -name NAME -description TEXT
  categories edit ID [-name NAME] [-description TEXT]
  categories delete ID

  books list [-q TEXT] [-genre NAME] [-page N]
  books add -name NAME -author NAME -genre NAME -file BOOK.pdf
  books edit ID [-name NAME] [-author NAME] [-genre NAME] [-file BOOK.pdf]
  books delete ID

  catalog [-category NAME] [-q TEXT] [-page N]   Product catalog, 4 per page
  stats                                          Product price statistics
  export COLLECTION [-o FILE] [-q TEXT] [-category NAME]
  watch COLLECTION [-for DURATION]               Print live snapshots
  chat                                           Manage categories in plain language
  pending list|clear [COLLECTION]                Changes made while offline

Examples:
  storekeeper login eyJhbGciOi...
  storekeeper products add -name "PVC pipe" -price 12.5 -category Plumbing
  storekeeper catalog -category Plumbing -page 2
  storekeeper -offline products edit temp_1700000000000 -price 13
  storekeeper export products -q pipe -o pipes.csv
`

var usageTemplate = mustTemplate("usage", usageText)

var productsTemplate = mustTemplate("products", `
=== Products ===
{{- if .Filter }}
Filter: {{ .Filter }}
{{- end }}
{{- if eq (len .Items) 0 }}
No products found.
{{- else }}
{{- range $i, $p := .Items }}
{{ inc $i }}. {{ $p.Name }} - {{ money $p.Price }}{{ if $p.Category }} [{{ $p.Category }}]{{ end }}
   ID: {{ $p.ID }}
{{- end }}
{{- end }}

Page {{ .Page }} of {{ .Pages }} ({{ .Total }} item(s))
`)

var categoriesTemplate = mustTemplate("categories", `
=== Categories ===
{{- if eq (len .Items) 0 }}
No categories found.
{{- else }}
{{- range $i, $c := .Items }}
{{ inc $i }}. {{ $c.Name }}: {{ $c.Description }}
   ID: {{ $c.ID }}
{{- end }}
{{- end }}

Page {{ .Page }} of {{ .Pages }} ({{ .Total }} item(s))
`)

var booksTemplate = mustTemplate("books", `
=== Books ===
{{- if eq (len .Items) 0 }}
No books found.
{{- else }}
{{- range $i, $b := .Items }}
{{ inc $i }}. {{ $b.Name }} by {{ $b.Author }} [{{ $b.Genre }}]
   ID:  {{ $b.ID }}
   PDF: {{ $b.PDFURL }}
{{- end }}
{{- end }}

Page {{ .Page }} of {{ .Pages }} ({{ .Total }} item(s))
`)

var catalogTemplate = mustTemplate("catalog", `
=== Catalog ===
Categories: {{ range $i, $c := .Categories }}{{ if $i }} | {{ end }}{{ if eq $c $.Selected }}[{{ $c }}]{{ else }}{{ $c }}{{ end }}{{ end }}
{{- if .Query }}
Search: {{ .Query }}
{{- end }}
{{- if eq (len .Items) 0 }}

No products match.
{{- else }}
{{ range .Items }}
  {{ .Name }}
    {{ money .Price }}{{ if .Category }} - {{ .Category }}{{ end }}
{{- end }}
{{- end }}

Page {{ .Page }} of {{ .Pages }}
`)

var statsTemplate = mustTemplate("stats", `
=== Product Statistics ===
Products:      {{ .Count }}
{{- if .Count }}
Total value:   {{ money .Total }}
Average price: {{ money .Average }}
Lowest price:  {{ money .Min }}
Highest price: {{ money .Max }}

By category:
{{- range .Categories }}
  {{ .Category }}: {{ .Count }} product(s), {{ money .Total }}
{{- end }}
{{- end }}
`)

var statusTemplate = mustTemplate("status", `
=== Status ===
Server:       {{ .Server }}
Connectivity: {{ if .Offline }}offline{{ else }}online{{ end }}
{{- if .Subject }}
Token:        {{ .Subject }}{{ if .Expires }} (expires {{ .Expires }}){{ end }}
{{- else }}
Token:        none (run 'storekeeper login')
{{- end }}

Local cache:
{{- range .Collections }}
  {{ .Name }}: {{ if .Refreshed }}refreshed {{ .Refreshed }}{{ else }}never loaded{{ end }}
{{- end }}
{{ if .Pending }}
⚠️  {{ .Pending }} change(s) were made offline and are only stored locally.
Run 'storekeeper pending list' to inspect them.
{{- else }}
✓ No offline changes recorded.
{{- end }}
`)
