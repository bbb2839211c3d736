package thunderframe_test

import (
	"fmt"

	"github.com/longlodw/thunderframe"
)

// Example builds a nested table, reshapes it and flattens it back into a
// plain table.
func Example() {
	address, err := thunderframe.GroupOf("address",
		thunderframe.ValueColumnOf("city", "Oslo", "Lima"),
		thunderframe.ValueColumnOf("zip", 150, 15001),
	)
	if err != nil {
		panic(err)
	}
	person, err := thunderframe.GroupOf("person",
		thunderframe.ValueColumnOf("name", "alice", "bob"),
		address,
	)
	if err != nil {
		panic(err)
	}
	people := thunderframe.MustFromColumns(thunderframe.ValueColumnOf("id", 1, 2), person)
	fmt.Print(people.Schema())

	// Select the zip code wherever it is nested and move it to the top.
	moved, err := people.Move(thunderframe.ColsAtAnyDepth(thunderframe.NameGlob("zip")), thunderframe.ToTop())
	if err != nil {
		panic(err)
	}
	fmt.Println(moved.ColumnNames())

	flat, err := moved.Flatten(nil, thunderframe.KeepParentNames())
	if err != nil {
		panic(err)
	}
	fmt.Println(flat.ColumnNames())
	// Output:
	// id: Int
	// person: {
	//   name: String
	//   address: {
	//     city: String
	//     zip: Int
	//   }
	// }
	// [id person zip]
	// [id person_name person_address_city zip]
}

func ExampleTable_InnerJoin() {
	users := thunderframe.MustFromColumns(
		thunderframe.ValueColumnOf("id", 1, 2, 3),
		thunderframe.ValueColumnOf("name", "alice", "bob", "carol"),
	)
	orders := thunderframe.MustFromColumns(
		thunderframe.ValueColumnOf("user", 1, 1, 3),
		thunderframe.ValueColumnOf("item", "book", "pen", "lamp"),
	)

	joined, err := users.InnerJoin(orders, []thunderframe.JoinKey{
		thunderframe.Match(thunderframe.PathOf("id"), thunderframe.PathOf("user")),
	})
	if err != nil {
		panic(err)
	}
	for _, row := range joined.Rows() {
		name, _ := row.Get("name")
		item, _ := row.Get("item")
		fmt.Println(name, item)
	}
	// Output:
	// alice book
	// alice pen
	// carol lamp
}

func ExampleTable_Explode() {
	tags := thunderframe.NewValueColumn("tags", []any{[]any{"red", "blue"}, []any{}, []any{"green"}})
	t := thunderframe.MustFromColumns(thunderframe.ValueColumnOf("id", 1, 2, 3), tags)

	exploded, err := t.Explode(thunderframe.Col("tags"))
	if err != nil {
		panic(err)
	}
	fmt.Print(exploded.Schema())
	for _, row := range exploded.Rows() {
		id, _ := row.Get("id")
		tag, _ := row.Get("tags")
		fmt.Println(id, tag)
	}
	// Output:
	// id: Int
	// tags: String
	// 1 red
	// 1 blue
	// 3 green
}

func ExampleTable_GroupBy() {
	t := thunderframe.MustFromColumns(
		thunderframe.ValueColumnOf("team", "a", "b", "a"),
		thunderframe.ValueColumnOf("score", 3, 5, 4),
	)
	grouped, err := t.GroupBy(thunderframe.Col("team"))
	if err != nil {
		panic(err)
	}
	for key, group := range grouped.Groups() {
		team, _ := key.Get("team")
		fmt.Println(team, group.NumRows())
	}
	// Output:
	// a 2
	// b 1
}

func ExampleTable_ExplainJoin() {
	left := thunderframe.MustFromColumns(thunderframe.ValueColumnOf("id", 1, 2))
	right := thunderframe.MustFromColumns(
		thunderframe.ValueColumnOf("id", 2, 3),
		thunderframe.ValueColumnOf("rank", 1, 9),
	)
	cond := thunderframe.AllOf{
		thunderframe.Eq(thunderframe.LeftCol("id"), thunderframe.RightCol("id")),
		thunderframe.Lt(thunderframe.RightCol("rank"), thunderframe.Lit(5)),
	}
	plan, err := left.ExplainJoin(right, thunderframe.JoinInner, cond)
	if err != nil {
		panic(err)
	}
	fmt.Println(plan.Strategy, len(plan.Keys), plan.Residual != nil)
	// Output:
	// hash 1 true
}
