package lib

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

const (
	ScriptFileName = "code.at"
	ResultFileName = "result.txt"
)

// Script is one golden test case: a directory named test<N>_<name> holding
// the source in code.at and the expected output in result.txt.
type Script struct {
	Number   int
	Name     string
	Dir      string
	Code     string
	Expected string
}

// ReadScriptsDir loads every test case under dir, ordered by number.
func ReadScriptsDir(dir string) ([]*Script, error) {
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	scripts := []*Script{}
	for _, file := range files {
		if !file.IsDir() {
			continue
		}
		number, ok := parseScriptDirName(file.Name())
		if !ok {
			continue
		}
		script, err := readScript(path.Join(dir, file.Name()), number)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, script)
	}

	sort.Slice(scripts, func(i, j int) bool {
		if scripts[i].Number != scripts[j].Number {
			return scripts[i].Number < scripts[j].Number
		}
		return scripts[i].Name < scripts[j].Name
	})
	return scripts, nil
}

// FindScript loads the first test case whose directory starts with
// test<number>_.
func FindScript(dir string, number int) (*Script, error) {
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, file := range files {
		if !file.IsDir() {
			continue
		}
		if n, ok := parseScriptDirName(file.Name()); ok && n == number {
			names = append(names, file.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("No test folder found for number %d in '%s'", number, dir)
	}

	sort.Strings(names)
	return readScript(path.Join(dir, names[0]), number)
}

func readScript(dir string, number int) (*Script, error) {
	code, err := ioutil.ReadFile(path.Join(dir, ScriptFileName))
	if err != nil {
		return nil, fmt.Errorf("Missing '%s' file in %s: %w", ScriptFileName, dir, err)
	}
	expected, err := ioutil.ReadFile(path.Join(dir, ResultFileName))
	if err != nil {
		return nil, fmt.Errorf("Missing '%s' file in %s: %w", ResultFileName, dir, err)
	}

	return &Script{
		Number:   number,
		Name:     path.Base(dir),
		Dir:      dir,
		Code:     strings.TrimSpace(string(code)),
		Expected: strings.TrimSpace(string(expected)),
	}, nil
}

// parseScriptDirName extracts N from "test<N>_<name>".
func parseScriptDirName(name string) (int, bool) {
	if !strings.HasPrefix(name, "test") {
		return 0, false
	}
	underscore := strings.IndexByte(name, '_')
	if underscore <= len("test") {
		return 0, false
	}
	n, err := strconv.Atoi(name[len("test"):underscore])
	if err != nil {
		return 0, false
	}
	return n, true
}

// SaveTestNumber remembers number as the default test case.
func SaveTestNumber(stateFile string, number int) error {
	return ioutil.WriteFile(stateFile, []byte(strconv.Itoa(number)), 0644)
}

// LoadTestNumber returns the remembered test case number. ok is false when
// nothing has been saved yet.
func LoadTestNumber(stateFile string) (number int, ok bool, err error) {
	data, err := ioutil.ReadFile(stateFile)
	if os.IsNotExist(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	number, err = cast.ToIntE(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false, fmt.Errorf("Invalid test number in %s: %w", stateFile, err)
	}
	return number, true, nil
}
