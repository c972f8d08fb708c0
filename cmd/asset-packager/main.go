package main

import "github.com/oshokin/asset-packager/cmd/asset-packager/cmd"

func main() {
	cmd.Execute()
}
