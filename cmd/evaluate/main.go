package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"cart-normalizer/internal/core/eval"
	"cart-normalizer/internal/pkg/common"
)

func main() {
	menuFlag := flag.String("menu", "", "限定評估的菜單（small 或 large），空值代表全部")
	scenariosFlag := flag.String("scenarios", "", "限定評估的情境 ID，以逗號分隔")
	outputFlag := flag.String("output", "", "評估報告輸出目錄，空值代表不寫檔")
	verboseFlag := flag.Bool("verbose", false, "輸出未匹配情境的細節")
	flag.Parse()

	// 評估工具只需要錯誤層級的日誌
	if err := common.InitLogger("error"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	scenarios := eval.AllScenarios()
	if *menuFlag != "" {
		scenarios = eval.ScenariosByMenu(*menuFlag)
		if len(scenarios) == 0 {
			fmt.Fprintf(os.Stderr, "unknown menu: %s\n", *menuFlag)
			os.Exit(1)
		}
	}
	if *scenariosFlag != "" {
		ids := strings.Split(*scenariosFlag, ",")
		for i := range ids {
			ids[i] = strings.TrimSpace(ids[i])
		}
		scenarios = eval.FilterScenarios(scenarios, ids)
		if len(scenarios) == 0 {
			fmt.Fprintf(os.Stderr, "no scenarios matched: %s\n", *scenariosFlag)
			os.Exit(1)
		}
	}

	report := eval.NewRunner().Run(scenarios)

	report.PrintSummary(os.Stdout)
	if *verboseFlag || report.Summary.ExactMatchRate < 1.0 {
		fmt.Println()
		report.PrintFailures(os.Stdout)
	}

	if *outputFlag != "" {
		path, err := report.Save(*outputFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to save report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nReport saved to %s\n", path)
	}

	if report.Summary.ExactMatchRate < 1.0 {
		os.Exit(1)
	}
}
