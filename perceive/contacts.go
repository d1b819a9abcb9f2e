/*
 * contacts.go, part of gochem.
 *
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * goChem is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package perceive

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	chem "github.com/wkpark/jmol-sub011"
)

// ContactCounts returns, for each atom in atoms, how many other atoms of its
// model lie within radius of it. The atoms are split among up to workers
// goroutines (one if workers < 1), all using the stateless spatial query.
// The Store must not be modified until ContactCounts returns.
func ContactCounts(ctx context.Context, s *chem.Store, atoms []int, radius float64, workers int) ([]int, error) {
	for _, i := range atoms {
		if i < 0 || i >= s.AtomCount() {
			return nil, fmt.Errorf("ContactCounts: atom %d: %w", i, chem.ErrOutOfRange)
		}
	}
	if workers < 1 {
		workers = 1
	}
	counts := make([]int, len(atoms))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k, i := range atoms {
		k, i := k, i
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a := s.Atom(i)
			counts[k] = len(s.Spatial().Within(a.Model(), a.Pos(), radius)) - 1
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
