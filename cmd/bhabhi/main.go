package main

import "github.com/Ameer-Tech-Sol/wa-anime-bot/internal/cli"

func main() {
	cli.Execute()
}
