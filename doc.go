/*
 * doc.go, part of gochem.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 * Gochem is developed at the laboratory for instruction in Swedish, Department of Chemistry,
 * University of Helsinki, Finland.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package chem is the main package of the library. It holds a structure set in memory: atoms,
bonds and the Model/Chain/Group hierarchy over them, with per-attribute change tracking.
The algorithms that work on a structure live in sub-packages.



	**Capabilities**


    Stores atoms and bonds in a Store, addressed by index. Bonds carry a bit-flag
	order (covalent, partial, aromatic, hydrogen, stereo), a diameter and a
	visibility flag. At most one bond joins any pair of atoms.

    Deletes atoms and bonds, renumbering everything that refers to them.

    Keeps a Model -> Chain -> Group hierarchy over contiguous atom ranges.

    Answers proximity queries through a lazily built k-d partition per model
	(package spatial).

    Tracks which atoms changed in which of 15 attribute categories (package taint).

    Infers covalent bonds from distances and radii, and hydrogen bonds, with or
	without explicit hydrogens (package perceive).

    Assigns alternating single and double orders to aromatic bonds (package aromatic).

    Views the bonds as a gonum graph, to find molecules, aromatic systems and
	bond paths (package chemgraph).

    Finds steric clashes between non-bonded atoms (package clash).

    Reads its settings with viper and logs with zap (package config).


Many functions here panic instead of returning errors. Those panics signal
programming errors, such as out of range atom or bond indexes. Bad input, on
the other hand, gives a *chem.Error, which wraps one of the Err sentinels.

*/
package chem
