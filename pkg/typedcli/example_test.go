package typedcli_test

import (
	"errors"
	"fmt"
	"os"

	"github.com/AndreyAkinshin/typedcli/pkg/typedcli"
)

func Example() {
	app := typedcli.New(typedcli.WithOutput(os.Stdout, os.Stdout))
	app.Command("greet", func(inv *typedcli.Invocation) {
		inv.Printf("Hello, %s!\n", inv.Arg(0))
	}, typedcli.Args(1, 1))

	code, _ := app.Run([]string{"prog", "Alice"})
	fmt.Println("exit", code)
	// Output:
	// Hello, Alice!
	// exit 0
}

func ExampleFailure() {
	app := typedcli.New(typedcli.WithOutput(os.Stdout, os.Stdout))
	app.CommandResult("check_disk", func(*typedcli.Invocation) typedcli.Outcome {
		return typedcli.Failure(errors.New("disk is full"))
	})

	code, _ := app.Run([]string{"prog", "check-disk"})
	fmt.Println("exit", code)
	// Output:
	// disk is full
	// exit 1
}
