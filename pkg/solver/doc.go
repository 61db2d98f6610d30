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

/*
Package solver decides which version of every package to install.

Given a root package, a root version, and a dependency provider that can
enumerate candidate versions and their constraints, the solver computes an
assignment of one version per package that satisfies every transitive
constraint, or proves that no such assignment exists.

The main entry point is Resolve, a conflict-driven clause-learning resolver:

 1. Unit propagation derives consequences of the current partial solution
    from the recorded incompatibilities (clauses stating which combinations
    of package versions cannot coexist).
 2. When no more consequences follow, the provider is asked to prioritize
    the undecided packages and to choose a version for the most urgent one.
    That choice becomes a decision, and the version's dependencies enter the
    clause database as new incompatibilities.
 3. When propagation finds a conflict, the solver derives a learned
    incompatibility by resolving the conflicting clause against the cause of
    its most recent satisfier, then backjumps to the decision level where
    the learned clause becomes useful.

The loop ends when every positively constrained package has a decision
(success; packages that are only excluded from some versions stay
undecided and are not part of the solution), or
when conflict resolution derives an incompatibility over the root package
alone (failure, reported as *NoSolutionError).

NaiveResolve is a plain depth-first resolver over the same provider
contract. It is orders of magnitude slower on conflict-heavy inputs and
exists to cross-check Resolve on arbitrary instances, together with the
pseudo-boolean encoding in CrossCheck.

The solver is single-threaded and holds no global state; independent
resolutions can run concurrently, each with its own provider.
*/
package solver
