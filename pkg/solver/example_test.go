/*
Copyright SUSE LLC.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package solver

import (
	"fmt"
	"sort"
)

func ExampleResolve() {
	provider := NewOfflineDependencyProvider[string, vn]()
	provider.AddDependencies("root", 1, []Dependency[string, vn]{
		Dep("foo", Between[vn](1, 3)),
	})
	provider.AddDependencies("foo", 1, []Dependency[string, vn]{
		Dep("bar", Between[vn](1, 3)),
	})
	provider.AddDependencies("bar", 1, nil)
	provider.AddDependencies("bar", 2, nil)

	solution, err := Resolve[string, vn, string, Priority](provider, "root", 1)
	if err != nil {
		fmt.Println(err)
		return
	}

	pkgs := make([]string, 0, len(solution))
	for pkg := range solution {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)
	for _, pkg := range pkgs {
		fmt.Printf("%s %d\n", pkg, solution[pkg])
	}
	// Output:
	// bar 2
	// foo 1
	// root 1
}
