package atom

// Well-known keyword hashes, computed once at package initialization
// rather than as Go `const` declarations: Go has no constant-expression
// string hashing, so the only way to guarantee these values are
// byte-for-byte equal to what [Table.Intern] would produce - the spec's
// "consistency between compile-time and runtime hashing" requirement - is
// to compute them with the exact same [HashString] function used at
// runtime, once, before main starts. keywords_test.go checks this
// invariant against a live Table for every entry below.
//
// They let a consumer compare a node's tag/class/id hash without a table
// lookup. Nothing else in this module reads them: the compiler's
// BLOOM_CHECK hoist takes its hashes from [Table.HashOf].
var (
	HashDiv     = HashString("div")
	HashSpan    = HashString("span")
	HashA       = HashString("a")
	HashP       = HashString("p")
	HashUl      = HashString("ul")
	HashOl      = HashString("ol")
	HashLi      = HashString("li")
	HashTable   = HashString("table")
	HashTr      = HashString("tr")
	HashTd      = HashString("td")
	HashInput   = HashString("input")
	HashButton  = HashString("button")
	HashForm    = HashString("form")
	HashImg     = HashString("img")
	HashHtml    = HashString("html")
	HashHead    = HashString("head")
	HashBody    = HashString("body")
	HashClass   = HashString("class")
	HashId      = HashString("id")
	HashStyle   = HashString("style")
	HashDisplay = HashString("display")
	HashFlex    = HashString("flex")
	HashBlock   = HashString("block")
	HashNone    = HashString("none")
)

// Keywords lists every (name, hash) pair above, for use by tests and by
// any tool that wants to print the table without reflection.
var Keywords = map[string]uint32{
	"div":     HashDiv,
	"span":    HashSpan,
	"a":       HashA,
	"p":       HashP,
	"ul":      HashUl,
	"ol":      HashOl,
	"li":      HashLi,
	"table":   HashTable,
	"tr":      HashTr,
	"td":      HashTd,
	"input":   HashInput,
	"button":  HashButton,
	"form":    HashForm,
	"img":     HashImg,
	"html":    HashHtml,
	"head":    HashHead,
	"body":    HashBody,
	"class":   HashClass,
	"id":      HashId,
	"style":   HashStyle,
	"display": HashDisplay,
	"flex":    HashFlex,
	"block":   HashBlock,
	"none":    HashNone,
}
