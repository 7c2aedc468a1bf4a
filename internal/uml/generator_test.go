package uml

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const animalsSource = `import os

class Animal():
    kind = "animal"

    def __init__(self, name):
        self.name = "x"
        self._age = 0
        self.name = "x"

    def speak(self):
        print("generic")

class Dog(Animal):
    def speak(self):
        raise NotImplementedError()

    def __wag(self):
        self.__tail = Tail()
`

const carsSource = `class Car(object):
    def __init__(self):
        self.engine = Engine()
        self.owner = Dog("rex")
        helper = Car()

class Engine:
    def start(self):
        return Spark()
`

const expectedDiagram = `@startuml
package animals {
class Animal
Animal : +__init__()
Animal : +speak()
class Dog
Dog : +speak()
Dog : -__wag()
Animal : +name
Animal : #_age
Dog : -__tail
}

package cars {
class Car
Car : +__init__()
class Engine
Engine : +start()
Car : +engine
Car : +owner
}

Animal <|-- Dog
Car -- Engine
Car -- Dog
@enduml
`

func newSourceFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
	}
	return fs
}

func TestGenerator_Generate(t *testing.T) {
	fs := newSourceFs(t, map[string]string{
		"/src/animals.py": animalsSource,
		"/src/cars.py":    carsSource,
	})

	var buf bytes.Buffer
	model, err := NewGenerator(fs).Generate(context.Background(), []string{"/src/animals.py", "/src/cars.py"}, &buf)
	require.NoError(t, err)

	assert.Equal(t, expectedDiagram, buf.String())
	assert.Equal(t, []string{"Animal", "Dog", "Car", "Engine"}, model.Classes)
}

func TestGenerator_FramingMarkersOnce(t *testing.T) {
	fs := newSourceFs(t, map[string]string{"/a.py": "", "/b.py": "class B:\n    pass\n"})

	var buf bytes.Buffer
	_, err := NewGenerator(fs).Generate(context.Background(), []string{"/a.py", "/b.py"}, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, UMLOpen+"\n"))
	assert.True(t, strings.HasSuffix(out, UMLClose+"\n"))
	assert.Equal(t, 1, strings.Count(out, UMLOpen))
	assert.Equal(t, 1, strings.Count(out, UMLClose))
	assert.Equal(t, "@startuml\npackage a {\n}\n\npackage b {\nclass B\n}\n\n@enduml\n", out)
}

func TestGenerator_ForwardReferenceAcrossFiles(t *testing.T) {
	fs := newSourceFs(t, map[string]string{
		"/garage.py": "class Garage:\n    def park(self):\n        return Car()\n",
		"/car.py":    "class Car:\n    pass\n",
	})

	var buf bytes.Buffer
	_, err := NewGenerator(fs).Generate(context.Background(), []string{"/garage.py", "/car.py"}, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Garage -- Car\n")
}

func TestGenerator_RedeclaredClassInLaterFile(t *testing.T) {
	fs := newSourceFs(t, map[string]string{
		"/first.py":  "class Shape:\n    def area(self):\n        self.w = 1\n",
		"/second.py": "class Shape:\n    def perimeter(self):\n        self.h = 2\n",
	})

	var buf bytes.Buffer
	model, err := NewGenerator(fs).Generate(context.Background(), []string{"/first.py", "/second.py"}, &buf)
	require.NoError(t, err)

	assert.Equal(t, "@startuml\npackage first {\nclass Shape\nShape : +area()\nShape : +w\n}\n\npackage second {\n}\n\n@enduml\n", buf.String())
	assert.Len(t, model.MembersOf["Shape"], 2)
}

func TestGenerator_RootObjectOption(t *testing.T) {
	fs := newSourceFs(t, map[string]string{"/w.py": "class Widget(QObject):\n    pass\nclass Thing(object):\n    pass\n"})

	var buf bytes.Buffer
	_, err := NewGenerator(fs, WithRootObject("QObject")).Generate(context.Background(), []string{"/w.py"}, &buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<|--")
}

func TestValidatePaths(t *testing.T) {
	assert.NoError(t, ValidatePaths([]string{"a.py", "dir/b.pyi"}))

	err := ValidatePaths([]string{"a.py", "mydir", "c.py"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFolderArgument))
	assert.Contains(t, err.Error(), "mydir")
}

func TestGenerator_FolderArgumentWritesNothing(t *testing.T) {
	fs := newSourceFs(t, map[string]string{"/a.py": "class A:\n    pass\n"})

	var buf bytes.Buffer
	_, err := NewGenerator(fs).Generate(context.Background(), []string{"/a.py", "mydir"}, &buf)
	require.ErrorIs(t, err, ErrFolderArgument)
	assert.Empty(t, buf.String())

	_, _, err = NewGenerator(fs).GenerateFile(context.Background(), []string{"mydir"}, "/out", "uml-garden.puml")
	require.ErrorIs(t, err, ErrFolderArgument)
	exists, _ := afero.Exists(fs, "/out/uml-garden.puml")
	assert.False(t, exists)
}

func TestGenerator_MissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	var buf bytes.Buffer
	_, err := NewGenerator(fs).Generate(context.Background(), []string{"/nope.py"}, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open /nope.py")
}

func TestGenerator_LongLineStillClosesDocument(t *testing.T) {
	src := "class A:\n    def run(self):\n        s = '" + strings.Repeat("x", 2<<20) + "'\n"
	fs := newSourceFs(t, map[string]string{"/a.py": src})

	var buf bytes.Buffer
	_, err := NewGenerator(fs).Generate(context.Background(), []string{"/a.py"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, "@startuml\npackage a {\nclass A\nA : +run()\n}\n\n@enduml\n", buf.String())
}

func TestGenerator_Cancelled(t *testing.T) {
	fs := newSourceFs(t, map[string]string{"/a.py": ""})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err := NewGenerator(fs).Generate(ctx, []string{"/a.py"}, &buf)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerator_GenerateFile(t *testing.T) {
	fs := newSourceFs(t, map[string]string{
		"/src/animals.py": animalsSource,
		"/src/cars.py":    carsSource,
	})

	outPath, model, err := NewGenerator(fs).GenerateFile(context.Background(), []string{"/src/animals.py", "/src/cars.py"}, "/out/plantumls", "uml-garden.puml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/out/plantumls", "uml-garden.puml"), outPath)
	assert.Len(t, model.Classes, 4)

	isDir, err := afero.DirExists(fs, "/out/plantumls")
	require.NoError(t, err)
	assert.True(t, isDir)

	content, err := afero.ReadFile(fs, outPath)
	require.NoError(t, err)
	assert.Equal(t, expectedDiagram, string(content))
}
