//go:build ignore

// build.go - hoops-stats build driver
// Usage: go run build.go [-target=TARGET] [-version=VERSION] [-v]
// Targets: all, web, statsreport, test, clean

package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const module = "github.com/kSibalic/nba"

// BuildContext holds configuration for the build process
type BuildContext struct {
	Verbose bool
	Version string
	Commit  string
}

var (
	distDir = "dist"

	// Executable names (key = source dir name under cmd/, value = output name)
	executables = map[string]string{
		"web":         "hoops-web",
		"statsreport": "statsreport",
	}

	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorYellow = "\033[33m"
)

func main() {
	target := flag.String("target", "all", "Build target")
	version := flag.String("version", "dev", "Version stamped into the binaries")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	printHeader()
	startTime := time.Now()

	ctx := &BuildContext{
		Verbose: *verbose,
		Version: *version,
		Commit:  gitCommit(),
	}

	switch *target {
	case "all":
		for name := range executables {
			buildExecutable(name, ctx)
		}
	case "web", "statsreport":
		buildExecutable(*target, ctx)
	case "test":
		runTests(ctx.Verbose)
	case "clean":
		if err := os.RemoveAll(distDir); err != nil {
			printError(fmt.Sprintf("Failed to clean %s: %v", distDir, err))
			os.Exit(1)
		}
	default:
		showHelp()
		os.Exit(1)
	}

	printSuccess(fmt.Sprintf("Build completed in %s", time.Since(startTime).Round(time.Millisecond)))
}

func printHeader() {
	fmt.Println(colorCyan + "===========================================" + colorReset)
	fmt.Println(colorCyan + "        hoops-stats - Build System         " + colorReset)
	fmt.Println(colorCyan + "===========================================" + colorReset)
	fmt.Println()
}

func printInfo(msg string) {
	fmt.Printf("%s[INFO]%s %s\n", colorBlue, colorReset, msg)
}

func printSuccess(msg string) {
	fmt.Printf("%s[SUCCESS]%s %s\n", colorGreen, colorReset, msg)
}

func printError(msg string) {
	fmt.Printf("%s[ERROR]%s %s\n", colorRed, colorReset, msg)
}

func printWarning(msg string) {
	fmt.Printf("%s[WARNING]%s %s\n", colorYellow, colorReset, msg)
}

func gitCommit() string {
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		printWarning("git commit unavailable, stamping 'unknown'")
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}

// buildExecutable builds cmd/<name> into dist/ with version information.
func buildExecutable(name string, ctx *BuildContext) {
	exeName, ok := executables[name]
	if !ok {
		printError(fmt.Sprintf("Unknown executable: %s", name))
		os.Exit(1)
	}
	if runtime.GOOS == "windows" {
		exeName += ".exe"
	}

	printInfo(fmt.Sprintf("Building %s...", name))

	outputPath := filepath.Join(distDir, exeName)
	pkg := module + "/pkg/contracts"
	ldflags := fmt.Sprintf("-s -w -X %s.Version=%s -X %s.BuildTime=%s -X %s.GitCommit=%s",
		pkg, ctx.Version, pkg, time.Now().UTC().Format(time.RFC3339), pkg, ctx.Commit)

	args := []string{"build", "-ldflags", ldflags, "-o", outputPath, "./cmd/" + name}
	if ctx.Verbose {
		args = append([]string{"build", "-v"}, args[1:]...)
		fmt.Printf("Running: go %s\n", strings.Join(args, " "))
	}

	cmd := exec.Command("go", args...)
	cmd.Stderr = os.Stderr
	if ctx.Verbose {
		cmd.Stdout = os.Stdout
	}
	if err := cmd.Run(); err != nil {
		printError(fmt.Sprintf("Failed to build %s: %v", name, err))
		os.Exit(1)
	}

	if info, err := os.Stat(outputPath); err == nil {
		printSuccess(fmt.Sprintf("Built %s (%.1f MB)", exeName, float64(info.Size())/1024/1024))
	}
}

func runTests(verbose bool) {
	printInfo("Running tests...")
	args := []string{"test", "-race", "./..."}
	if verbose {
		args = append(args, "-v")
	}
	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		printError(fmt.Sprintf("Tests failed: %v", err))
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Usage: go run build.go [-target=TARGET] [-version=VERSION] [-v]")
	fmt.Println()
	fmt.Println("Targets:")
	fmt.Println("  all          Build every executable (default)")
	fmt.Println("  web          Build the API server")
	fmt.Println("  statsreport  Build the report CLI")
	fmt.Println("  test         Run the test suite")
	fmt.Println("  clean        Remove dist/")
}
