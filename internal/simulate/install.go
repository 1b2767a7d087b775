package simulate

import "github.com/BUTTERCUPXCZ/interview-sandbox/internal/runtime"

// InstallGuide returns human-readable installation instructions for the
// runtime a language needs. Returned verbatim to the caller whenever the
// engine reports runtimeMissing.
func InstallGuide(lang runtime.Language) string {
	switch lang {
	case runtime.JavaScript:
		return "Install Node.js to run JavaScript code:\n" +
			"  macOS:         brew install node\n" +
			"  Ubuntu/Debian: sudo apt install nodejs npm\n" +
			"  Windows:       winget install OpenJS.NodeJS\n" +
			"  Or download from https://nodejs.org"
	case runtime.TypeScript:
		return "Install Node.js (with npx) to run TypeScript code:\n" +
			"  macOS:         brew install node\n" +
			"  Ubuntu/Debian: sudo apt install nodejs npm\n" +
			"  Windows:       winget install OpenJS.NodeJS\n" +
			"  ts-node is fetched automatically via npx on first run"
	case runtime.Python:
		return "Install Python to run Python code:\n" +
			"  macOS:         brew install python\n" +
			"  Ubuntu/Debian: sudo apt install python3\n" +
			"  Windows:       winget install Python.Python.3.12\n" +
			"  Or download from https://www.python.org/downloads"
	case runtime.Java:
		return "Install a JDK (javac and java) to run Java code:\n" +
			"  macOS:         brew install openjdk\n" +
			"  Ubuntu/Debian: sudo apt install default-jdk\n" +
			"  Windows:       winget install Microsoft.OpenJDK.21\n" +
			"  Or download from https://adoptium.net"
	case runtime.Cpp:
		return "Install g++ to compile C++ code:\n" +
			"  macOS:         xcode-select --install\n" +
			"  Ubuntu/Debian: sudo apt install build-essential\n" +
			"  Windows:       install MinGW-w64 or MSYS2 (pacman -S mingw-w64-x86_64-gcc)"
	default:
		return ""
	}
}
