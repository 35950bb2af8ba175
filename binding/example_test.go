package binding_test

import (
	"fmt"

	"propbind/binding"
	"propbind/notify"
	"propbind/propath"
)

type person struct {
	notify.Properties

	Name string
}

func (p *person) SetName(v string) {
	notify.Set(&p.Properties, &p.Name, v, "Name")
}

type textBox struct {
	notify.Properties
	notify.Context

	Text string
}

func (t *textBox) SetText(v string) {
	notify.Set(&t.Properties, &t.Text, v, "Text")
}

func ExampleManager_Bind() {
	p := &person{Name: "Ada"}
	box := &textBox{}
	box.SetDataContext(p)

	m := binding.NewManager()
	b, err := m.Bind(box, binding.Config{
		TargetPath: propath.MustParse("Text"),
		SourcePath: propath.MustParse("Name"),
		Mode:       binding.TwoWay,
	})
	if err != nil {
		panic(err)
	}

	fmt.Println(b.Name(), box.Text)

	p.SetName("Grace")
	fmt.Println(box.Text)

	box.SetText("Barbara")
	fmt.Println(p.Name)

	m.DisposeAll()
	p.SetName("Edsger")
	fmt.Println(box.Text, b.State())

	// Output:
	// binding1 Ada
	// Grace
	// Barbara
	// Barbara disposed
}

func ExampleParseSheet() {
	s, err := binding.ParseSheet([]byte(`
bindings:
  - target: Text
    source: Name
    mode: two-way
    fallback: anonymous
`))
	if err != nil {
		panic(err)
	}

	configs, err := s.Configs(nil)
	if err != nil {
		panic(err)
	}

	for _, c := range configs {
		fmt.Println(c.TargetPath, c.SourcePath, c.Mode, c.FallbackValue)
	}

	// Output:
	// Text Name TwoWay anonymous
}
