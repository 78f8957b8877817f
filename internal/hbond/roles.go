// Package hbond detects and classifies hydrogen bonds between residues
// through a fixed four-stage pipeline: candidate detection, atom-sharing
// conflict resolution, donor/acceptor classification and post-filtering.
package hbond

import "github.com/jyesselm/find-pair-sub002/internal/pdb"

// Role is the donor/acceptor capability of one atom. Base atoms that can do
// both are kept distinct from backbone hydroxyls so the two vocabularies
// are never conflated during linkage filtering.
type Role int8

const (
	RoleUnknown Role = iota
	RoleDonor
	RoleAcceptor
	RoleEitherBase
	RoleEitherBackbone
)

// String returns a short label for the role.
func (r Role) String() string {
	switch r {
	case RoleDonor:
		return "donor"
	case RoleAcceptor:
		return "acceptor"
	case RoleEitherBase:
		return "either"
	case RoleEitherBackbone:
		return "either-backbone"
	}
	return "unknown"
}

func (r Role) either() bool {
	return r == RoleEitherBase || r == RoleEitherBackbone
}

// baseRoles maps base code -> atom name -> role for the base moiety.
var baseRoles = map[byte]map[string]Role{
	'A': {
		"N6": RoleDonor,
		"N1": RoleAcceptor, "N3": RoleAcceptor, "N7": RoleAcceptor,
	},
	'G': {
		"N1": RoleDonor, "N2": RoleDonor,
		"O6": RoleAcceptor, "N3": RoleAcceptor, "N7": RoleAcceptor,
	},
	'C': {
		"N4": RoleDonor,
		"N3": RoleAcceptor, "O2": RoleAcceptor,
	},
	'U': {
		"N3": RoleDonor,
		"O2": RoleAcceptor, "O4": RoleAcceptor,
	},
	'T': {
		"N3": RoleDonor,
		"O2": RoleAcceptor, "O4": RoleAcceptor,
	},
	'I': {
		"N1": RoleDonor,
		"O6": RoleAcceptor, "N3": RoleAcceptor, "N7": RoleAcceptor,
	},
}

// backboneRoles covers the sugar/phosphate oxygens shared by all bases.
var backboneRoles = map[string]Role{
	"O2'": RoleEitherBackbone,
	"O3'": RoleAcceptor, "O4'": RoleAcceptor, "O5'": RoleAcceptor,
	"OP1": RoleAcceptor, "OP2": RoleAcceptor, "OP3": RoleAcceptor,
	"O1P": RoleAcceptor, "O2P": RoleAcceptor, "O3P": RoleAcceptor,
}

// roleFor looks up the donor/acceptor role of an atom in the context of its
// residue. Unrecognized base identity or atom name yields RoleUnknown,
// which forces a non-standard classification downstream.
func roleFor(r *pdb.Residue, a *pdb.Atom) Role {
	if a.IsBackbone() {
		if role, ok := backboneRoles[a.Name]; ok {
			return role
		}
		return RoleUnknown
	}
	base := pdb.BaseCode(r)
	if base == 0 {
		return RoleUnknown
	}
	if role, ok := baseRoles[base][a.Name]; ok {
		return role
	}
	// Glycosidic nitrogens can both donate and accept in noncanonical
	// geometries.
	if a.Name == "N9" || (a.Name == "N1" && !pdb.IsPurine(r)) {
		return RoleEitherBase
	}
	return RoleUnknown
}

// standardCombination reports whether a donor/acceptor role pairing is one
// of the seven allowed standard combinations: the two concrete
// complementary pairings, or any pairing involving an "either" role.
func standardCombination(r1, r2 Role) bool {
	switch {
	case r1 == RoleDonor && r2 == RoleAcceptor:
		return true
	case r1 == RoleAcceptor && r2 == RoleDonor:
		return true
	case r1.either() && (r2 == RoleDonor || r2 == RoleAcceptor):
		return true
	case r2.either() && (r1 == RoleDonor || r1 == RoleAcceptor):
		return true
	case r1.either() && r2.either():
		return true
	}
	return false
}

// linkage types describe how the two roles of a surviving bond combine.
// Donor-donor and acceptor-acceptor pairings are chemically implausible
// and are filtered out during conflict resolution.
const (
	linkMixed          = 0
	linkDonorDonor     = 1
	linkAcceptorAccept = 2
)

func linkageType(r1, r2 Role) int {
	if r1 == RoleDonor && r2 == RoleDonor {
		return linkDonorDonor
	}
	if r1 == RoleAcceptor && r2 == RoleAcceptor {
		return linkAcceptorAccept
	}
	return linkMixed
}

var disallowedLinkages = map[int]bool{
	linkDonorDonor:     true,
	linkAcceptorAccept: true,
}
