package admin

// Op is a set of admin operations allowed on a model.
type Op uint8

const (
	OpList Op = 1 << iota
	OpAdd
	OpChange
	OpDelete

	OpAll = OpList | OpAdd | OpChange | OpDelete
)

func (o Op) Has(op Op) bool {
	return o&op == op
}

// Inline edits rows of a child model on the parent's change page.
// Extra is the number of blank rows offered for new children.
type Inline struct {
	Model string
	Extra int
}

// ModelAdmin describes how one model appears on the admin site.
type ModelAdmin struct {
	Name        string // URL segment
	Plural      string
	Ops         Op
	ListDisplay []string
	Inlines     []Inline
}

// Registry lists the models managed through the admin site, in index order.
var Registry = []ModelAdmin{
	{
		Name:        "article",
		Plural:      "Articles",
		Ops:         OpAll,
		ListDisplay: []string{"title", "body", "author"},
		Inlines:     []Inline{{Model: "comment", Extra: 0}},
	},
	{
		Name:        "comment",
		Plural:      "Comments",
		Ops:         OpAll,
		ListDisplay: []string{"comment"},
	},
}

func lookup(name string) (ModelAdmin, bool) {
	for _, m := range Registry {
		if m.Name == name {
			return m, true
		}
	}
	return ModelAdmin{}, false
}

func (m ModelAdmin) inline(model string) (Inline, bool) {
	for _, in := range m.Inlines {
		if in.Model == model {
			return in, true
		}
	}
	return Inline{}, false
}
