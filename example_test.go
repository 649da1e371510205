package bombrisk_test

import (
	"fmt"
	"log"

	"github.com/aretw0/bombrisk"
)

// ExampleWidget shows the host-side flow: construct, init, interact, read the result.
func ExampleWidget() {
	w, err := bombrisk.New(bombrisk.WithSeed(7))
	if err != nil {
		log.Fatal(err)
	}
	if err := w.Init(map[string]any{"boxCount": 10, "scale": 0.5, "currency": "$"}); err != nil {
		log.Fatal(err)
	}

	res, _ := w.Commit()
	fmt.Println(res.Status)

	_ = w.Select(1)
	res, _ = w.Commit()
	fmt.Println(res.Status)

	values, _ := w.Values()
	out, _ := values.Result()
	fmt.Println(out.Selection, out.BombPosition >= 1 && out.BombPosition <= 10)
	// Output:
	// rejected
	// committed
	// 1 true
}

// ExampleWidget_Init_invalid shows that configuration errors are reported before any gauge exists.
func ExampleWidget_Init_invalid() {
	w, _ := bombrisk.New()
	err := w.Init(map[string]any{"method": 123})
	fmt.Println(err != nil, w.Gauge() == nil)

	err = w.Init(map[string]any{"method": "Holt-Laury"})
	fmt.Println(err)
	// Output:
	// true true
	// bombrisk: method "Holt-Laury": method: not registered
}
