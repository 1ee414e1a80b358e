package relptr_test

import (
	"fmt"

	"github.com/vkngwrapper/relptr"
)

type document struct {
	title string
	pages int
	first relptr.Pointer[string, int8]
}

func newDocument(title string, pages int) document {
	this := document{title: title, pages: pages}
	err := this.first.Set(&this.title)
	if err != nil {
		panic(err)
	}

	return this
}

func ExamplePointer() {
	doc := newDocument("Hello World", 10)

	// the aggregate was returned by value, relocating pointer and target together
	fmt.Println(*doc.first.Get())
	fmt.Println(doc.pages)

	boxed := new(document)
	*boxed = doc
	fmt.Println(*boxed.first.Get())

	// Output:
	// Hello World
	// 10
	// Hello World
}
