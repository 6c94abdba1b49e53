// cmd/mcagg/main.go
package main

func main() {
	Execute()
}
